package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"temple/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	UserID         int64      `gorm:"column:user_id"`
	CeremonyTypeID int64      `gorm:"column:ceremony_type_id"`
	BookingDate    time.Time  `gorm:"column:booking_date"`
	BookingTime    string     `gorm:"column:booking_time"`
	FullName       string     `gorm:"column:full_name"`
	Phone          string     `gorm:"column:phone"`
	Details        *string    `gorm:"column:details"`
	Status         string     `gorm:"column:status"`
	AdminResponse  *string    `gorm:"column:admin_response"`
	AdminID        *int64     `gorm:"column:admin_id"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
	RespondedAt    *time.Time `gorm:"column:responded_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var details, adminResponse string
	if m.Details != nil {
		details = *m.Details
	}
	if m.AdminResponse != nil {
		adminResponse = *m.AdminResponse
	}

	return &domain.Booking{
		ID:             m.ID,
		UserID:         m.UserID,
		CeremonyTypeID: m.CeremonyTypeID,
		BookingDate:    m.BookingDate,
		BookingTime:    m.BookingTime,
		FullName:       m.FullName,
		Phone:          m.Phone,
		Details:        details,
		Status:         domain.BookingStatus(m.Status),
		AdminResponse:  adminResponse,
		AdminID:        m.AdminID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		RespondedAt:    m.RespondedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var details *string
	if b.Details != "" {
		v := b.Details
		details = &v
	}
	var adminResponse *string
	if b.AdminResponse != "" {
		v := b.AdminResponse
		adminResponse = &v
	}

	return bookingModel{
		ID:             b.ID,
		UserID:         b.UserID,
		CeremonyTypeID: b.CeremonyTypeID,
		BookingDate:    b.BookingDate,
		BookingTime:    b.BookingTime,
		FullName:       b.FullName,
		Phone:          b.Phone,
		Details:        details,
		Status:         string(b.Status),
		AdminResponse:  adminResponse,
		AdminID:        b.AdminID,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
		RespondedAt:    b.RespondedAt,
	}
}

func liveStatusStrings() []string {
	out := make([]string, 0, len(domain.LiveStatuses))
	for _, s := range domain.LiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// FindConflicting returns bookings at exactly (date, time) whose status
// still counts against slot exclusivity.
func (r *BookingRepository) FindConflicting(ctx context.Context, date time.Time, slot string) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("booking_date = ? AND booking_time = ?", date, slot).
		Where("status IN ?", liveStatusStrings()).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// Create persists a new booking with status forced to pending. The
// conflict check and the insert run in one transaction so two
// concurrent submissions for the same slot cannot both pass the check;
// the partial unique index idx_live_slot backstops the same invariant
// at the storage level.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	b.Status = domain.BookingPending
	b.AdminResponse = ""
	b.AdminID = nil
	b.RespondedAt = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&bookingModel{}).
			Where("booking_date = ? AND booking_time = ?", b.BookingDate, b.BookingTime).
			Where("status IN ?", liveStatusStrings()).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrSlotTaken
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_live_slot" {
				return ErrSlotTaken
			}
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListForUser(ctx context.Context, userID int64, status string, page, limit int) ([]domain.Booking, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("user_id = ?", userID)
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []bookingModel
	if err := query.
		Order("booking_date DESC, booking_time DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

type ListFilters struct {
	Status   string
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	Limit    int
}

func (r *BookingRepository) ListAll(ctx context.Context, filters ListFilters) ([]domain.Booking, int64, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}

	query := r.db.WithContext(ctx).Model(&bookingModel{})
	if filters.Status != "" && filters.Status != "all" {
		query = query.Where("status = ?", filters.Status)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("booking_date >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("booking_date <= ?", filters.DateTo)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []bookingModel
	if err := query.
		Order("booking_date DESC, booking_time DESC").
		Limit(filters.Limit).
		Offset((filters.Page - 1) * filters.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

// ApplyDecision is a conditional update: it only succeeds while the
// stored status still equals pending, so two admins racing to decide
// the same booking resolve to exactly one winner. The loser gets
// ErrAlreadyDecided, never a silent overwrite.
func (r *BookingRepository) ApplyDecision(ctx context.Context, id int64, newStatus domain.BookingStatus, adminID int64, adminResponse string) (*domain.Booking, error) {
	nowTS := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(domain.BookingPending)).
		Updates(map[string]any{
			"status":         string(newStatus),
			"admin_response": adminResponse,
			"admin_id":       adminID,
			"responded_at":   nowTS,
			"updated_at":     nowTS,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		// Row missing, or someone already decided. Re-read to tell apart.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyDecided
	}
	return r.GetByID(ctx, id)
}

// Cancel flips a pending booking to cancelled, but only for its owner.
// Same conditional-update shape as ApplyDecision so a cancel racing an
// admin decision loses cleanly.
func (r *BookingRepository) Cancel(ctx context.Context, id, ownerID int64) (*domain.Booking, error) {
	nowTS := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND user_id = ? AND status = ?", id, ownerID, string(domain.BookingPending)).
		Updates(map[string]any{
			"status":     string(domain.BookingCancelled),
			"updated_at": nowTS,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		b, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if b.UserID != ownerID {
			return nil, ErrNotOwner
		}
		return nil, ErrAlreadyDecided
	}
	return r.GetByID(ctx, id)
}

// Delete removes a booking row entirely. Admin escape hatch, outside
// the workflow's guarantees.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type StatusCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
	Today     int64 `json:"today"`
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (*StatusCounts, error) {
	counts := &StatusCounts{}

	if err := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&counts.Total).Error; err != nil {
		return nil, err
	}

	byStatus := map[domain.BookingStatus]*int64{
		domain.BookingPending:   &counts.Pending,
		domain.BookingApproved:  &counts.Approved,
		domain.BookingRejected:  &counts.Rejected,
		domain.BookingCancelled: &counts.Cancelled,
	}
	for status, dst := range byStatus {
		if err := r.db.WithContext(ctx).
			Model(&bookingModel{}).
			Where("status = ?", string(status)).
			Count(dst).Error; err != nil {
			return nil, err
		}
	}

	start := now.BeginningOfDay()
	end := now.EndOfDay()
	if err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Count(&counts.Today).Error; err != nil {
		return nil, err
	}

	return counts, nil
}

// ListPending returns the most recent pending bookings with their
// ceremony preloaded, for the admin notification summary.
func (r *BookingRepository) ListPending(ctx context.Context, limit int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var rows []domain.Booking
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(domain.BookingPending)).
		Order("created_at DESC").
		Limit(limit).
		Preload("Ceremony").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// ListRecentForUser returns the viewer's own bookings by most recent
// status change, for the user notification summary.
func (r *BookingRepository) ListRecentForUser(ctx context.Context, userID int64, limit int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var rows []domain.Booking
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Preload("Ceremony").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
