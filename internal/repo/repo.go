package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"confreg/internal/model"
)

var ErrRegistrationNotFound = errors.New("registration not found")

// listCap bounds the unpaginated list endpoints.
const listCap = 1000

type Repository interface {
	CreateRegistration(ctx context.Context, reg *model.Registration) error
	GetRegistrationByID(ctx context.Context, id string) (*model.Registration, error)
	ListRegistrations(ctx context.Context) ([]model.Registration, error)
	SetOrderID(ctx context.Context, id, orderID string) error
	SetPaymentCompleted(ctx context.Context, id, paymentID string) error
	CreateContactMessage(ctx context.Context, msg *model.ContactMessage) error
	ListContactMessages(ctx context.Context) ([]model.ContactMessage, error)
	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := ioutil.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) MigrateDown(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("failed to read rollback files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := ioutil.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read rollback file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations rolled back successfully from %s", migrationsDir)
	return nil
}

func (r *repository) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	query := `
		INSERT INTO registrations (
			id, full_name, email, phone, category, organization, designation, address,
			accommodation_required, room_type, check_in_date, check_out_date,
			amount, payment_status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	if _, err := r.db.ExecContext(ctx, query,
		reg.ID, reg.FullName, reg.Email, reg.Phone, reg.Category,
		reg.Organization, reg.Designation, reg.Address,
		reg.AccommodationRequired, reg.RoomType, reg.CheckInDate, reg.CheckOutDate,
		reg.Amount, reg.PaymentStatus, reg.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

func (r *repository) GetRegistrationByID(ctx context.Context, id string) (*model.Registration, error) {
	query := `
		SELECT id, full_name, email, phone, category, organization, designation, address,
		       accommodation_required, room_type, check_in_date, check_out_date,
		       amount, payment_status, order_id, payment_id, created_at
		FROM registrations
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var reg model.Registration
	if err := scanRegistration(row, &reg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return &reg, nil
}

func (r *repository) ListRegistrations(ctx context.Context) ([]model.Registration, error) {
	query := `
		SELECT id, full_name, email, phone, category, organization, designation, address,
		       accommodation_required, room_type, check_in_date, check_out_date,
		       amount, payment_status, order_id, payment_id, created_at
		FROM registrations
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, listCap)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := scanRegistration(rows, &reg); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, nil
}

// SetOrderID records the gateway order against a registration. Repeated calls
// overwrite the previous order id; an unknown id is a no-op.
func (r *repository) SetOrderID(ctx context.Context, id, orderID string) error {
	query := `
		UPDATE registrations
		SET order_id = $1
		WHERE id = $2
	`

	res, err := r.db.ExecContext(ctx, query, orderID, id)
	if err != nil {
		return fmt.Errorf("failed to update order id: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.log.Debug().Str("registration_id", id).Msg("order id update matched no registration")
	}
	return nil
}

// SetPaymentCompleted transitions a registration to the completed payment
// status and records the payment id. Unknown ids are a no-op.
func (r *repository) SetPaymentCompleted(ctx context.Context, id, paymentID string) error {
	query := `
		UPDATE registrations
		SET payment_status = $1, payment_id = $2
		WHERE id = $3
	`

	res, err := r.db.ExecContext(ctx, query, model.PaymentStatusCompleted, paymentID, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.log.Debug().Str("registration_id", id).Msg("payment update matched no registration")
	}
	return nil
}

func (r *repository) CreateContactMessage(ctx context.Context, msg *model.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message, msg.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}

func (r *repository) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	query := `
		SELECT id, name, email, phone, subject, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, listCap)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.ContactMessage
	for rows.Next() {
		var msg model.ContactMessage
		if err := rows.Scan(
			&msg.ID, &msg.Name, &msg.Email, &msg.Phone,
			&msg.Subject, &msg.Message, &msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		msgs = append(msgs, msg)
	}

	return msgs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner, reg *model.Registration) error {
	return row.Scan(
		&reg.ID,
		&reg.FullName,
		&reg.Email,
		&reg.Phone,
		&reg.Category,
		&reg.Organization,
		&reg.Designation,
		&reg.Address,
		&reg.AccommodationRequired,
		&reg.RoomType,
		&reg.CheckInDate,
		&reg.CheckOutDate,
		&reg.Amount,
		&reg.PaymentStatus,
		&reg.OrderID,
		&reg.PaymentID,
		&reg.CreatedAt,
	)
}
