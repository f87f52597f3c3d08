package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized     = "AUTH_UNAUTHORIZED"      // 로그인 필요
	AuthTokenExpired     = "AUTH_TOKEN_EXPIRED"     // 토큰 만료
	AuthTokenInvalid     = "AUTH_TOKEN_INVALID"     // 잘못된 토큰
	AuthEmailNotVerified = "AUTH_EMAIL_NOT_VERIFIED" // 이메일 미인증
	AuthDomainNotAllowed = "AUTH_DOMAIN_NOT_ALLOWED" // 허용되지 않은 도메인

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // 접근 권한 없음

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // 잘못된 ID
	ValidationRequired     = "VALIDATION_REQUIRED"      // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 상품 (PRODUCT_) ====================
	ProductNotFound = "PRODUCT_NOT_FOUND" // 상품 없음

	// ==================== 브랜드 (BRAND_) ====================
	BrandNotFound      = "BRAND_NOT_FOUND"       // 브랜드 없음
	BrandAlreadyExists = "BRAND_ALREADY_EXISTS"  // 브랜드명 중복

	// ==================== 카테고리 (CATEGORY_) ====================
	CategoryNotFound  = "CATEGORY_NOT_FOUND"  // 카테고리 없음
	CategoryInUse     = "CATEGORY_IN_USE"     // 참조 중이라 삭제 불가
	CategoryCycle     = "CATEGORY_CYCLE"      // 순환 참조 발생
	CategoryNotRoot   = "CATEGORY_NOT_ROOT"   // 1depth 카테고리 아님

	// ==================== 기획 세트 (PRODUCT_SET_) ====================
	ProductSetNotFound = "PRODUCT_SET_NOT_FOUND" // 기획 세트 없음
	ProductSetNoLinks  = "PRODUCT_SET_NO_LINKS"  // 등록할 링크 없음

	// ==================== 홈 카테고리 버전 (HOME_) ====================
	HomeVersionNotFound = "HOME_VERSION_NOT_FOUND" // 버전 없음

	// ==================== 업로드 (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // 잘못된 파일 형식
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // 파일 너무 큼
	UploadFailed          = "UPLOAD_FAILED"            // 업로드 실패

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // 외부 API 오류 (크롤 트리거, 캐시 프록시)
)
