package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-nomina/internal/hours"
	settingserrors "go-nomina/internal/settings/errors"
	"go-nomina/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const SettingsKeyPrefix = "settings:config:"

func GetSettingsKey(companyID string) string {
	return SettingsKeyPrefix + companyID
}

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, companyID string) (SettingsResponse, error)
	Update(ctx context.Context, companyID string, req UpdateSettingsRequest) (SettingsResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// Get returns the company's payroll configuration, falling back to the
// statutory defaults when nothing is stored yet. Cached in redis; concurrent
// misses collapse into one database load.
func (s *service) Get(ctx context.Context, companyID string) (SettingsResponse, error) {
	cacheKey := GetSettingsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp SettingsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.load(ctx, companyID)
		if err != nil {
			return SettingsResponse{}, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return SettingsResponse{}, err
	}

	return v.(SettingsResponse), nil
}

func (s *service) load(ctx context.Context, companyID string) (SettingsResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SettingsResponse{}, settingserrors.ErrInvalidCompanyID
	}

	cfg, err := s.repo.GetCompanySettings(ctx, companyID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("load settings failed", zap.Error(err))
			return SettingsResponse{}, err
		}
		cfg = &CompanySettings{
			CompanyID:          companyUUID,
			MinimumSalary:      DefaultMinimumSalary,
			TransportAllowance: DefaultTransportAllowance,
			HealthPct:          DefaultHealthPct,
			PensionPct:         DefaultPensionPct,
			HourlyRate:         DefaultHourlyRate,
		}
	}

	rates, err := s.repo.ListHourTypeRates(ctx, companyID)
	if err != nil {
		s.logger.Error("load hour type rates failed", zap.Error(err))
		return SettingsResponse{}, err
	}
	if len(rates) == 0 {
		rates = DefaultHourTypeRates(companyUUID)
	}

	return mapToResponse(cfg, rates), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID string,
	req UpdateSettingsRequest,
) (SettingsResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update settings requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SettingsResponse{}, settingserrors.ErrInvalidCompanyID
	}

	if req.HourlyRate <= 0 {
		return SettingsResponse{}, settingserrors.ErrInvalidHourlyRate
	}
	if req.HealthPct < 0 || req.HealthPct > 100 || req.PensionPct < 0 || req.PensionPct > 100 {
		return SettingsResponse{}, settingserrors.ErrInvalidPercentage
	}

	known := make(map[string]bool, 10)
	for _, item := range (hours.HourQuantities{}).Items() {
		known[item.Category] = true
	}
	for category, rate := range req.HourTypes {
		if !known[category] {
			return SettingsResponse{}, settingserrors.ErrUnknownHourType
		}
		if rate.SurchargePct < 0 {
			return SettingsResponse{}, settingserrors.ErrInvalidSurcharge
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SettingsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cfg := &CompanySettings{
		ID:                 uuid.New(),
		CompanyID:          companyUUID,
		CompanyName:        req.CompanyName,
		NIT:                req.NIT,
		Address:            req.Address,
		MinimumSalary:      decimal.NewFromFloat(req.MinimumSalary),
		TransportAllowance: decimal.NewFromFloat(req.TransportAllowance),
		HealthPct:          decimal.NewFromFloat(req.HealthPct),
		PensionPct:         decimal.NewFromFloat(req.PensionPct),
		HourlyRate:         decimal.NewFromFloat(req.HourlyRate),
	}

	if err := qtx.UpsertCompanySettings(ctx, cfg); err != nil {
		s.logger.Error("upsert settings failed", zap.Error(err))
		return SettingsResponse{}, err
	}

	rates := make([]HourTypeRate, 0, len(req.HourTypes))
	for _, item := range (hours.HourQuantities{}).Items() {
		input, ok := req.HourTypes[item.Category]
		if !ok {
			continue
		}
		appliesPermanent := true
		if input.AppliesPermanent != nil {
			appliesPermanent = *input.AppliesPermanent
		}
		appliesTemporary := true
		if input.AppliesTemporary != nil {
			appliesTemporary = *input.AppliesTemporary
		}
		rates = append(rates, HourTypeRate{
			ID:               uuid.New(),
			CompanyID:        companyUUID,
			Category:         item.Category,
			DisplayName:      input.DisplayName,
			SurchargePct:     decimal.NewFromFloat(input.SurchargePct),
			AppliesPermanent: appliesPermanent,
			AppliesTemporary: appliesTemporary,
		})
	}

	if err := qtx.ReplaceHourTypeRates(ctx, companyID, rates); err != nil {
		s.logger.Error("replace hour type rates failed", zap.Error(err))
		return SettingsResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SettingsResponse{}, err
	}

	s.invalidateCache(ctx, companyID)

	s.logger.Info("update settings success",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.Int("hour_types", len(rates)),
	)

	return mapToResponse(cfg, rates), nil
}

func (s *service) invalidateCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetSettingsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate settings cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(cfg *CompanySettings, rates []HourTypeRate) SettingsResponse {
	minSalary, _ := cfg.MinimumSalary.Float64()
	allowance, _ := cfg.TransportAllowance.Float64()
	health, _ := cfg.HealthPct.Float64()
	pension, _ := cfg.PensionPct.Float64()
	hourly, _ := cfg.HourlyRate.Float64()

	byCategory := make(map[string]HourTypeRate, len(rates))
	for _, rate := range rates {
		byCategory[rate.Category] = rate
	}

	// Emit in the fixed category order regardless of storage order.
	ordered := make([]HourTypeRateResponse, 0, len(rates))
	for _, item := range (hours.HourQuantities{}).Items() {
		rate, ok := byCategory[item.Category]
		if !ok {
			continue
		}
		pct, _ := rate.SurchargePct.Float64()
		ordered = append(ordered, HourTypeRateResponse{
			Category:         rate.Category,
			DisplayName:      rate.DisplayName,
			SurchargePct:     pct,
			AppliesPermanent: rate.AppliesPermanent,
			AppliesTemporary: rate.AppliesTemporary,
		})
	}

	return SettingsResponse{
		CompanyName:        cfg.CompanyName,
		NIT:                cfg.NIT,
		Address:            cfg.Address,
		MinimumSalary:      minSalary,
		TransportAllowance: allowance,
		HealthPct:          health,
		PensionPct:         pension,
		HourlyRate:         hourly,
		HourTypes:          ordered,
	}
}
