package service

import (
	"time"

	"github.com/vreblog/public_api/internal/models"
	"github.com/vreblog/public_api/internal/repository"
	"github.com/vreblog/public_api/internal/utils"
)

// NeedsReset reports whether the stored reset date belongs to an earlier
// UTC calendar day than now. Pure so the daily-rollover rule is testable
// without a store.
func NeedsReset(lastReset, now time.Time) bool {
	last := lastReset.UTC()
	today := now.UTC()
	return last.Year() != today.Year() || last.YearDay() != today.YearDay()
}

// QuotaService enforces the per-key daily request quota. The counter lives
// in a single api_keys row; there is no cross-instance lock, so two
// concurrent admissions for one key can both pass the limit check. That
// over-admission window is accepted — the charge itself never loses counts
// because the increment is one atomic UPDATE.
type QuotaService struct {
	keyRepo *repository.APIKeyRepository
}

// NewQuotaService constructs a new QuotaService.
func NewQuotaService(keyRepo *repository.APIKeyRepository) *QuotaService {
	return &QuotaService{keyRepo: keyRepo}
}

// Admit charges one request against the key's daily quota. It performs the
// lazy daily reset first, unconditionally, so a key that was over quota
// yesterday is usable the moment the UTC date changes. Returns
// ErrQuotaExceeded without charging when the limit is already reached.
// On success the key's RequestsToday reflects the post-increment value.
func (s *QuotaService) Admit(key *models.APIKey, now time.Time) error {
	if NeedsReset(key.LastResetAt, now) {
		if err := s.keyRepo.ResetDailyCount(key.ID, now.UTC()); err != nil {
			return err
		}
		key.RequestsToday = 0
		key.LastResetAt = now.UTC()
	}

	if key.RequestsToday >= key.DailyLimit {
		return utils.ErrQuotaExceeded
	}

	used, err := s.keyRepo.IncrementUsage(key.ID)
	if err != nil {
		return err
	}
	key.RequestsToday = used
	return nil
}
