package service

import (
	"context"
	"errors"
	"testing"

	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDispatcher struct {
	calls []string
	err   error
}

func (f *fakeDispatcher) DispatchCrawl(ctx context.Context, productID string) error {
	f.calls = append(f.calls, productID)
	return f.err
}

func setupProductSetServiceTest(t *testing.T) (ProductSetService, *gorm.DB, *fakeDispatcher) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	platform := model.Platform{Name: "쿠팡"}
	require.NoError(t, testDB.Create(&platform).Error)

	dispatcher := &fakeDispatcher{}
	svc := NewProductSetService(
		repository.NewProductSetRepository(testDB),
		repository.NewProductRepository(testDB),
		repository.NewPriceHistoryRepository(testDB),
		dispatcher,
		platform.PlatformID,
	)
	return svc, testDB, dispatcher
}

func createTestProduct(t *testing.T, testDB *gorm.DB, name string) *model.Product {
	t.Helper()
	product := &model.Product{Name: name, Description: name + " 설명"}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func TestParseLinks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "Quoted segments with blanks",
			raw:  `"a, b" , c,,"d"`,
			want: []string{"a", "b", "c", "d"},
		},
		{
			name: "Single link",
			raw:  "https://example.com/item/1",
			want: []string{"https://example.com/item/1"},
		},
		{
			name: "Duplicates are kept in order",
			raw:  "x, y, x",
			want: []string{"x", "y", "x"},
		},
		{
			name: "Only separators",
			raw:  `, "" ,`,
			want: []string{},
		},
		{
			name: "Empty input",
			raw:  "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLinks(tt.raw))
		})
	}
}

func TestProductSetService_RegisterProductSets(t *testing.T) {
	svc, testDB, dispatcher := setupProductSetServiceTest(t)
	product := createTestProduct(t, testDB, "수분 크림")

	result, err := svc.RegisterProductSets(context.Background(), product.ProductID,
		`https://a.example/1, "https://b.example/2", https://a.example/1`)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Registered)
	assert.Equal(t, 0, result.Failed)
	assert.True(t, result.Triggered)

	// 크롤링은 상품 단위로 한 번만
	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, product.ProductID, dispatcher.calls[0])

	var sets []model.ProductSet
	require.NoError(t, testDB.Where("product_id = ?", product.ProductID).Find(&sets).Error)
	assert.Len(t, sets, 3)
	for _, set := range sets {
		assert.Equal(t, product.Name, set.ProductName)
		assert.False(t, set.MDPick)
	}
}

func TestProductSetService_RegisterProductSets_ProductNotFound(t *testing.T) {
	svc, _, dispatcher := setupProductSetServiceTest(t)

	_, err := svc.RegisterProductSets(context.Background(), "00000000-0000-0000-0000-000000000000", "https://a.example/1")
	assert.ErrorIs(t, err, ErrProductNotFound)
	// 상품이 없으면 크롤링도 걸지 않는다
	assert.Empty(t, dispatcher.calls)
}

func TestProductSetService_RegisterProductSets_NoLinks(t *testing.T) {
	svc, testDB, _ := setupProductSetServiceTest(t)
	product := createTestProduct(t, testDB, "수분 크림")

	_, err := svc.RegisterProductSets(context.Background(), product.ProductID, ` , "" ,`)
	assert.ErrorIs(t, err, ErrNoLinksGiven)
}

func TestProductSetService_RegisterProductSets_DispatchFailure(t *testing.T) {
	svc, testDB, dispatcher := setupProductSetServiceTest(t)
	dispatcher.err = errors.New("workflow dispatch failed")
	product := createTestProduct(t, testDB, "수분 크림")

	result, err := svc.RegisterProductSets(context.Background(), product.ProductID, "https://a.example/1")
	require.NoError(t, err)

	// 등록은 성공, 트리거 실패만 표시
	assert.Equal(t, 1, result.Registered)
	assert.False(t, result.Triggered)
}

func TestProductSetService_SearchMDPick(t *testing.T) {
	svc, testDB, _ := setupProductSetServiceTest(t)

	cream := createTestProduct(t, testDB, "수분 크림")
	toner := createTestProduct(t, testDB, "토너")

	_, err := svc.RegisterProductSets(context.Background(), cream.ProductID, "https://a.example/1, https://b.example/2")
	require.NoError(t, err)
	_, err = svc.RegisterProductSets(context.Background(), toner.ProductID, "https://c.example/3")
	require.NoError(t, err)

	var sets []model.ProductSet
	require.NoError(t, testDB.Order("link_url ASC").Find(&sets).Error)
	_, err = svc.RecordPrice(sets[0].ProductSetID, 25000, nil, 3000, "")
	require.NoError(t, err)

	t.Run("By name fragment", func(t *testing.T) {
		entries, err := svc.SearchMDPick("크림")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		for _, entry := range entries {
			assert.Equal(t, "수분 크림", entry.ProductName)
		}
	})

	t.Run("By exact product id", func(t *testing.T) {
		entries, err := svc.SearchMDPick(toner.ProductID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "토너", entries[0].ProductName)
	})

	t.Run("Latest price is attached", func(t *testing.T) {
		entries, err := svc.SearchMDPick("크림")
		require.NoError(t, err)

		var priced int
		for _, entry := range entries {
			if entry.LatestPrice != nil {
				priced++
				assert.Equal(t, int64(25000), entry.LatestPrice.OriginalPrice)
			}
		}
		assert.Equal(t, 1, priced)
	})

	t.Run("No matches", func(t *testing.T) {
		entries, err := svc.SearchMDPick("없는상품")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestProductSetService_SetMDPick(t *testing.T) {
	svc, testDB, _ := setupProductSetServiceTest(t)
	product := createTestProduct(t, testDB, "수분 크림")

	_, err := svc.RegisterProductSets(context.Background(), product.ProductID, "https://a.example/1")
	require.NoError(t, err)

	var set model.ProductSet
	require.NoError(t, testDB.First(&set).Error)

	require.NoError(t, svc.SetMDPick(set.ProductSetID, true))

	var updated model.ProductSet
	require.NoError(t, testDB.First(&updated, "product_set_id = ?", set.ProductSetID).Error)
	assert.True(t, updated.MDPick)

	require.NoError(t, svc.SetMDPick(set.ProductSetID, false))
	require.NoError(t, testDB.First(&updated, "product_set_id = ?", set.ProductSetID).Error)
	assert.False(t, updated.MDPick)

	err = svc.SetMDPick("00000000-0000-0000-0000-000000000000", true)
	assert.ErrorIs(t, err, ErrProductSetNotFound)
}

func TestProductSetService_RecordPrice(t *testing.T) {
	svc, testDB, _ := setupProductSetServiceTest(t)
	product := createTestProduct(t, testDB, "수분 크림")

	_, err := svc.RegisterProductSets(context.Background(), product.ProductID, "https://a.example/1")
	require.NoError(t, err)

	var set model.ProductSet
	require.NoError(t, testDB.First(&set).Error)

	discount := int64(19900)
	history, err := svc.RecordPrice(set.ProductSetID, 25000, &discount, 0, `{"coupon":true}`)
	require.NoError(t, err)
	assert.NotEmpty(t, history.ID)
	assert.False(t, history.RecordedAt.IsZero())

	_, err = svc.RecordPrice("00000000-0000-0000-0000-000000000000", 1000, nil, 0, "")
	assert.ErrorIs(t, err, ErrProductSetNotFound)
}
