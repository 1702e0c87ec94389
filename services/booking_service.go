// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking-api/events"
	"hotel-booking-api/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService owns the availability ledger: querying free entries and
// committing reservations against them.
type BookingService struct {
	DB        *gorm.DB
	Publisher events.Publisher
	Log       *zap.Logger
}

func NewBookingService(db *gorm.DB, publisher events.Publisher, log *zap.Logger) *BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingService{DB: db, Publisher: publisher, Log: log}
}

// Availability is the answer to a CheckAvailability query.
type Availability struct {
	RoomID     uint             `json:"roomId"`
	StartDate  string           `json:"startDate"`
	EndDate    string           `json:"endDate"`
	Entries    []models.Booking `json:"entries"`
	TotalPrice float64          `json:"totalPrice"`
}

// Confirmation describes the entries reserved by one BookRoom call.
// Partial is set when fewer nights were free than the range covers.
type Confirmation struct {
	Reference  string           `json:"reference"`
	RoomID     uint             `json:"roomId"`
	CustomerID uint             `json:"customerId"`
	StartDate  string           `json:"startDate"`
	EndDate    string           `json:"endDate"`
	Entries    []models.Booking `json:"entries"`
	TotalPrice float64          `json:"totalPrice"`
	Partial    bool             `json:"partial"`
}

// CreateBookingInput is a direct ledger row creation. CheckOut defaults to the
// following day and Price to the room's nightly rate for CheckIn.
type CreateBookingInput struct {
	RoomID     uint
	CheckIn    time.Time
	CheckOut   *time.Time
	Price      *float64
	Reserved   bool
	CustomerID *uint
}

func sumPrices(entries []models.Booking) float64 {
	total := 0.0
	for _, e := range entries {
		total += e.Price
	}
	return roundPrice(total)
}

// freeEntries selects the unreserved entries of a room whose check-in day lies
// within r. With lock set the rows are selected FOR UPDATE.
func freeEntries(tx *gorm.DB, roomID uint, r DateRange, lock bool) ([]models.Booking, error) {
	q := tx.Where("room_id = ? AND reserved = ? AND check_in BETWEEN ? AND ?", roomID, false, r.Start, r.End).
		Order("check_in ASC")
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var entries []models.Booking
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	return entries, nil
}

func ensureRoom(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("room %d: %w", roomID, ErrNotFound)
		}
		return nil, fmt.Errorf("db error checking room %d: %w", roomID, err)
	}
	return &room, nil
}

func ensureCustomer(tx *gorm.DB, customerID uint) error {
	var cust models.Customer
	if err := tx.Select("id").First(&cust, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
		}
		return fmt.Errorf("db error checking customer %d: %w", customerID, err)
	}
	return nil
}

// CheckAvailability returns every free entry of the room in [start, end] and
// the quoted total. A room with no free entry yields ErrUnavailable so callers
// can tell it apart from a missing room (ErrNotFound).
func (s *BookingService) CheckAvailability(ctx context.Context, roomID uint, start, end time.Time) (*Availability, error) {
	r, err := NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	if _, err := ensureRoom(db, roomID); err != nil {
		return nil, err
	}

	entries, err := freeEntries(db, roomID, r, false)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("room %d has no free nights between %s and %s: %w",
			roomID, r.Start.Format(dateLayout), r.End.Format(dateLayout), ErrUnavailable)
	}

	return &Availability{
		RoomID:     roomID,
		StartDate:  r.Start.Format(dateLayout),
		EndDate:    r.End.Format(dateLayout),
		Entries:    entries,
		TotalPrice: sumPrices(entries),
	}, nil
}

// BookRoom reserves the free entries of a room in [start, end] for a customer.
//
// Free entries are reselected inside the transaction under a row lock, and the
// update only flips rows that are still unreserved; if any row was taken in
// between, the whole commit is rolled back with ErrConflict. Whatever subset of
// the range is free gets booked (Confirmation.Partial reports a short stay).
func (s *BookingService) BookRoom(ctx context.Context, roomID uint, start, end time.Time, customerID uint) (*Confirmation, error) {
	r, err := NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	var booked []models.Booking

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ensureRoom(tx, roomID); err != nil {
			return err
		}
		if err := ensureCustomer(tx, customerID); err != nil {
			return err
		}

		entries, err := freeEntries(tx, roomID, r, true)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("room %d has no free nights between %s and %s: %w",
				roomID, r.Start.Format(dateLayout), r.End.Format(dateLayout), ErrUnavailable)
		}

		ids := make([]uint, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}

		res := tx.Model(&models.Booking{}).
			Where("id IN ? AND reserved = ?", ids, false).
			Updates(map[string]interface{}{
				"reserved":    true,
				"customer_id": customerID,
				"reference":   reference,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to reserve entries: %w", res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			return fmt.Errorf("reserved %d of %d entries for room %d: %w",
				res.RowsAffected, len(ids), roomID, ErrConflict)
		}

		return tx.Where("id IN ?", ids).Order("check_in ASC").Find(&booked).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	conf := &Confirmation{
		Reference:  reference,
		RoomID:     roomID,
		CustomerID: customerID,
		StartDate:  r.Start.Format(dateLayout),
		EndDate:    r.End.Format(dateLayout),
		Entries:    booked,
		TotalPrice: sumPrices(booked),
		Partial:    len(booked) < r.Days(),
	}

	s.Log.Info("reservation committed",
		zap.String("reference", reference),
		zap.Uint("room_id", roomID),
		zap.Uint("customer_id", customerID),
		zap.Int("nights", len(booked)),
		zap.Bool("partial", conf.Partial),
	)
	s.publishConfirmed(ctx, conf)

	return conf, nil
}

func (s *BookingService) publishConfirmed(ctx context.Context, conf *Confirmation) {
	ids := make([]uint, len(conf.Entries))
	for i, e := range conf.Entries {
		ids[i] = e.ID
	}
	event := events.BookingConfirmed{
		Reference:   conf.Reference,
		RoomID:      conf.RoomID,
		CustomerID:  conf.CustomerID,
		StartDate:   conf.StartDate,
		EndDate:     conf.EndDate,
		EntryIDs:    ids,
		TotalPrice:  conf.TotalPrice,
		Partial:     conf.Partial,
		ConfirmedAt: time.Now().UTC(),
	}
	if err := s.Publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.Log.Warn("failed to publish booking event", zap.String("reference", conf.Reference), zap.Error(err))
	}
}

// CreateBooking inserts a single ledger row directly.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if in.RoomID == 0 {
		return nil, fmt.Errorf("%w: roomId is required", ErrInvalidInput)
	}
	if in.CheckIn.IsZero() {
		return nil, fmt.Errorf("%w: checkIn is required", ErrInvalidInput)
	}
	if in.Reserved && (in.CustomerID == nil || *in.CustomerID == 0) {
		return nil, fmt.Errorf("%w: a reserved entry needs a customerId", ErrInvalidInput)
	}

	checkIn := StartOfDay(in.CheckIn)
	checkOut := checkIn.AddDate(0, 0, 1)
	if in.CheckOut != nil {
		checkOut = StartOfDay(*in.CheckOut)
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidInput)
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	var created models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := ensureRoom(tx, in.RoomID)
		if err != nil {
			return err
		}
		if in.CustomerID != nil && *in.CustomerID != 0 {
			if err := ensureCustomer(tx, *in.CustomerID); err != nil {
				return err
			}
		}

		var existing int64
		if err := tx.Model(&models.Booking{}).
			Where("room_id = ? AND check_in = ?", in.RoomID, checkIn).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("db error checking ledger: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("room %d already has an entry for %s: %w", in.RoomID, checkIn.Format(dateLayout), ErrDuplicate)
		}

		price := NightlyRate(room.Price, checkIn)
		if in.Price != nil {
			price = roundPrice(*in.Price)
		}

		created = models.Booking{
			RoomID:   in.RoomID,
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Price:    price,
			Reserved: in.Reserved,
		}
		if in.CustomerID != nil && *in.CustomerID != 0 {
			id := *in.CustomerID
			created.CustomerID = &id
		}
		if in.Reserved {
			created.Reference = uuid.NewString()
		}

		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// List returns ledger entries ordered by room and day, optionally for one room.
func (s *BookingService) List(ctx context.Context, roomID *uint) ([]models.Booking, error) {
	q := s.DB.WithContext(ctx).Order("room_id ASC, check_in ASC")
	if roomID != nil {
		q = q.Where("room_id = ?", *roomID)
	}
	list := []models.Booking{}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

func (s *BookingService) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var bk models.Booking
	if err := s.DB.WithContext(ctx).First(&bk, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &bk, nil
}

// ListByCustomer returns the reservation history of a customer.
func (s *BookingService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Booking, error) {
	db := s.DB.WithContext(ctx)
	if err := ensureCustomer(db, customerID); err != nil {
		return nil, err
	}
	list := []models.Booking{}
	if err := db.Where("customer_id = ?", customerID).Order("check_in ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve customer bookings: %w", err)
	}
	return list, nil
}
