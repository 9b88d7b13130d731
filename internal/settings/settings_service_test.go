package settings_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-nomina/internal/hours"
	"go-nomina/internal/settings"
	settingserrors "go-nomina/internal/settings/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSettingsRepository struct {
	withTxFn                func(tx *sql.Tx) settings.Repository
	getCompanySettingsFn    func(ctx context.Context, companyID string) (*settings.CompanySettings, error)
	upsertCompanySettingsFn func(ctx context.Context, cfg *settings.CompanySettings) error
	listHourTypeRatesFn     func(ctx context.Context, companyID string) ([]settings.HourTypeRate, error)
	replaceHourTypeRatesFn  func(ctx context.Context, companyID string, rates []settings.HourTypeRate) error
}

func (f *fakeSettingsRepository) WithTx(tx *sql.Tx) settings.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeSettingsRepository) GetCompanySettings(ctx context.Context, companyID string) (*settings.CompanySettings, error) {
	if f.getCompanySettingsFn != nil {
		return f.getCompanySettingsFn(ctx, companyID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSettingsRepository) UpsertCompanySettings(ctx context.Context, cfg *settings.CompanySettings) error {
	if f.upsertCompanySettingsFn != nil {
		return f.upsertCompanySettingsFn(ctx, cfg)
	}
	return nil
}

func (f *fakeSettingsRepository) ListHourTypeRates(ctx context.Context, companyID string) ([]settings.HourTypeRate, error) {
	if f.listHourTypeRatesFn != nil {
		return f.listHourTypeRatesFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeSettingsRepository) ReplaceHourTypeRates(ctx context.Context, companyID string, rates []settings.HourTypeRate) error {
	if f.replaceHourTypeRatesFn != nil {
		return f.replaceHourTypeRatesFn(ctx, companyID, rates)
	}
	return nil
}

func surchargeFor(t *testing.T, resp settings.SettingsResponse, category string) float64 {
	t.Helper()
	for _, rate := range resp.HourTypes {
		if rate.Category == category {
			return rate.SurchargePct
		}
	}
	t.Fatalf("category %s missing from response", category)
	return 0
}

func TestSettingsService_Get(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("unconfigured company gets statutory defaults", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := settings.NewService(db, &fakeSettingsRepository{}, nil)

		resp, err := svc.Get(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, 1423500.0, resp.MinimumSalary)
		assert.Equal(t, 100000.0, resp.TransportAllowance)
		assert.Equal(t, 4.0, resp.HealthPct)
		assert.Equal(t, 4.0, resp.PensionPct)
		assert.Equal(t, 5931.25, resp.HourlyRate)
		assert.Len(t, resp.HourTypes, 10)
		assert.Equal(t, 0.0, surchargeFor(t, resp, hours.CategoryOrdinary))
		assert.Equal(t, 35.0, surchargeFor(t, resp, hours.CategoryNight))
		assert.Equal(t, 75.0, surchargeFor(t, resp, hours.CategorySundayDay))
		assert.Equal(t, 110.0, surchargeFor(t, resp, hours.CategorySundayNight))
		assert.Equal(t, 25.0, surchargeFor(t, resp, hours.CategoryOvertimeDay))
		assert.Equal(t, 75.0, surchargeFor(t, resp, hours.CategoryOvertimeNight))
		assert.Equal(t, 80.0, surchargeFor(t, resp, hours.CategoryHolidayDay))
		assert.Equal(t, 105.0, surchargeFor(t, resp, hours.CategoryHolidayDayOvertime))
		assert.Equal(t, 110.0, surchargeFor(t, resp, hours.CategoryHolidayNight))
		assert.Equal(t, 185.0, surchargeFor(t, resp, hours.CategoryHolidayNightOvertime))
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		cached := settings.SettingsResponse{MinimumSalary: 1500000, HourlyRate: 6250}
		payload, _ := json.Marshal(cached)

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(settings.GetSettingsKey(companyID)).SetVal(string(payload))

		repo := &fakeSettingsRepository{
			getCompanySettingsFn: func(ctx context.Context, cid string) (*settings.CompanySettings, error) {
				t.Fatal("repository should not be reached on cache hit")
				return nil, nil
			},
		}

		svc := settings.NewService(db, repo, rdb)

		resp, err := svc.Get(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, 1500000.0, resp.MinimumSalary)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		key := settings.GetSettingsKey(companyID)
		redisMock.ExpectGet(key).RedisNil()
		redisMock.Regexp().ExpectSet(key, `.*`, 1*time.Hour).SetVal("OK")

		svc := settings.NewService(db, &fakeSettingsRepository{}, rdb)

		resp, err := svc.Get(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, 1423500.0, resp.MinimumSalary)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	validReq := func() settings.UpdateSettingsRequest {
		return settings.UpdateSettingsRequest{
			CompanyName:        "Panaderia La Espiga",
			NIT:                "900123456-1",
			MinimumSalary:      1423500,
			TransportAllowance: 100000,
			HealthPct:          4,
			PensionPct:         4,
			HourlyRate:         5931.25,
			HourTypes: map[string]settings.HourTypeRateInput{
				hours.CategoryNight:       {DisplayName: "Recargo nocturno", SurchargePct: 35},
				hours.CategoryOvertimeDay: {DisplayName: "Hora extra diurna", SurchargePct: 25},
			},
		}
	}

	t.Run("success replaces rate table and invalidates cache", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel(settings.GetSettingsKey(companyID)).SetVal(1)

		var savedCfg settings.CompanySettings
		var savedRates []settings.HourTypeRate
		repo := &fakeSettingsRepository{
			upsertCompanySettingsFn: func(ctx context.Context, cfg *settings.CompanySettings) error {
				savedCfg = *cfg
				return nil
			},
			replaceHourTypeRatesFn: func(ctx context.Context, cid string, rates []settings.HourTypeRate) error {
				savedRates = rates
				return nil
			},
		}

		svc := settings.NewService(db, repo, rdb)

		resp, err := svc.Update(ctx, companyID, validReq())

		assert.NoError(t, err)
		assert.Equal(t, "Panaderia La Espiga", savedCfg.CompanyName)
		assert.Len(t, savedRates, 2)
		assert.Equal(t, hours.CategoryNight, savedRates[0].Category)
		assert.Equal(t, 35.0, surchargeFor(t, resp, hours.CategoryNight))
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("zero hourly rate rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := settings.NewService(db, &fakeSettingsRepository{}, nil)

		req := validReq()
		req.HourlyRate = 0

		_, err := svc.Update(ctx, companyID, req)
		assert.ErrorIs(t, err, settingserrors.ErrInvalidHourlyRate)
	})

	t.Run("percentage above 100 rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := settings.NewService(db, &fakeSettingsRepository{}, nil)

		req := validReq()
		req.HealthPct = 101

		_, err := svc.Update(ctx, companyID, req)
		assert.ErrorIs(t, err, settingserrors.ErrInvalidPercentage)
	})

	t.Run("unknown hour type rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := settings.NewService(db, &fakeSettingsRepository{}, nil)

		req := validReq()
		req.HourTypes["hora_lunar"] = settings.HourTypeRateInput{DisplayName: "?", SurchargePct: 10}

		_, err := svc.Update(ctx, companyID, req)
		assert.ErrorIs(t, err, settingserrors.ErrUnknownHourType)
	})

	t.Run("negative surcharge rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := settings.NewService(db, &fakeSettingsRepository{}, nil)

		req := validReq()
		req.HourTypes[hours.CategoryNight] = settings.HourTypeRateInput{DisplayName: "Recargo nocturno", SurchargePct: -5}

		_, err := svc.Update(ctx, companyID, req)
		assert.ErrorIs(t, err, settingserrors.ErrInvalidSurcharge)
	})
}
