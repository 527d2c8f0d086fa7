package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatusPending   = "PENDING"
	StatusProcessed = "PROCESSED"
	StatusPaid      = "PAID"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context) ([]PayrollResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error)
	GetByPeriod(ctx context.Context, month, year int) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	Process(ctx context.Context, id string) (PayrollResponse, error)
	GeneratePayslip(ctx context.Context, id string) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  employee.Repository
	outbox     kafka.OutboxRepository
	payslipDir string
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employees, nil, "", logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outboxRepo kafka.OutboxRepository,
	payslipDir string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if payslipDir == "" {
		payslipDir = "storage/payslips"
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		outbox:     outboxRepo,
		payslipDir: payslipDir,
		logger:     l,
	}
}

// Create persists a PENDING payroll for one employee and period. The net
// salary is derived here once and never recomputed afterwards. The unique
// index on (employee_id, month, year) makes concurrent creates for the same
// period race to a single winner.
func (s *service) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	s.logger.Debug("create payroll requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if req.Month < 1 || req.Month > 12 || req.Year < 1 {
		return PayrollResponse{}, payrollerrors.ErrInvalidPeriod
	}
	if req.BaseSalary < 0 || req.Allowances < 0 || req.Deductions < 0 {
		return PayrollResponse{}, payrollerrors.ErrNegativeAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create payroll begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	exists, err := s.employees.WithTx(tx).Exists(ctx, req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !exists {
		return PayrollResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	p := &Payroll{
		ID:            uuid.New(),
		EmployeeID:    employeeUUID,
		Month:         req.Month,
		Year:          req.Year,
		BaseSalary:    req.BaseSalary,
		Allowances:    req.Allowances,
		Deductions:    req.Deductions,
		NetSalary:     req.BaseSalary + req.Allowances - req.Deductions,
		Status:        StatusPending,
		GeneratedDate: time.Now().UTC(),
	}

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		s.logger.Warn("create payroll persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("month", req.Month),
			zap.Int("year", req.Year),
			zap.Error(err),
		)
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create payroll commit failed", zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}
	s.logger.Info("create payroll success",
		zap.String("payroll_id", p.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int64("net_salary", p.NetSalary),
	)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	exists, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, employeeerrors.ErrEmployeeNotFound
	}

	payrolls, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByPeriod(ctx context.Context, month, year int) ([]PayrollResponse, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, payrollerrors.ErrInvalidPeriod
	}

	payrolls, err := s.repo.FindByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

// Process flips a PENDING payroll to PROCESSED. The monetary amounts are
// frozen at creation time and this step never touches them.
func (s *service) Process(ctx context.Context, id string) (PayrollResponse, error) {
	s.logger.Debug("process payroll requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payroll_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("process payroll begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if p.Status != StatusPending {
		s.logger.Warn("process payroll invalid transition",
			zap.String("payroll_id", id),
			zap.String("from_status", p.Status),
		)
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	flipped, err := qtx.MarkProcessed(ctx, id, now)
	if err != nil {
		s.logger.Error("process payroll persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}
	if !flipped {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	p.Status = StatusProcessed
	p.ProcessedDate = &now

	if s.outbox != nil {
		if err := s.enqueueProcessedEvent(ctx, tx, p); err != nil {
			s.logger.Error("process payroll enqueue event failed", zap.String("payroll_id", id), zap.Error(err))
			return PayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("process payroll commit failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}
	s.logger.Info("process payroll success",
		zap.String("payroll_id", id),
		zap.String("employee_id", p.EmployeeID.String()),
		zap.Int64("net_salary", p.NetSalary),
	)

	return mapToResponse(*p), nil
}

// GeneratePayslip renders a PDF for a processed payroll and records where it
// was written. It is normally invoked by the lifecycle consumer rather than
// an inbound request.
func (s *service) GeneratePayslip(ctx context.Context, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if p.Status == StatusPending {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	emp, err := s.employees.FindByID(ctx, p.EmployeeID.String())
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	path, err := writePayslipPDF(s.payslipDir, p, emp)
	if err != nil {
		s.logger.Error("generate payslip render failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}

	now := time.Now().UTC()
	updated, err := s.repo.SetPayslip(ctx, id, path, now)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !updated {
		return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
	}

	p.PayslipURL = &path
	p.PayslipGeneratedAt = &now

	s.logger.Info("generate payslip success",
		zap.String("payroll_id", id),
		zap.String("payslip_url", path),
	)

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deleted, err := s.repo.WithTx(tx).Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return payrollerrors.ErrPayrollNotFound
	}

	return tx.Commit()
}

func (s *service) enqueueProcessedEvent(ctx context.Context, tx *sql.Tx, p *Payroll) error {
	payload, err := json.Marshal(events.PayrollProcessedEvent{
		EventType:  "payroll.processed",
		PayrollID:  p.ID.String(),
		EmployeeID: p.EmployeeID.String(),
		Month:      p.Month,
		Year:       p.Year,
		NetSalary:  p.NetSalary,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll",
		AggregateID:   p.ID.String(),
		EventType:     "payroll.processed",
		Topic:         events.PayrollLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:            p.ID.String(),
		EmployeeID:    p.EmployeeID.String(),
		Month:         p.Month,
		Year:          p.Year,
		BaseSalary:    p.BaseSalary,
		Allowances:    p.Allowances,
		Deductions:    p.Deductions,
		NetSalary:     p.NetSalary,
		Status:        p.Status,
		GeneratedDate: p.GeneratedDate.Format(time.RFC3339),
	}
	if p.ProcessedDate != nil {
		v := p.ProcessedDate.Format(time.RFC3339)
		resp.ProcessedDate = &v
	}
	if p.PayslipURL != nil {
		resp.PayslipURL = p.PayslipURL
	}
	if p.PayslipGeneratedAt != nil {
		v := p.PayslipGeneratedAt.Format(time.RFC3339)
		resp.PayslipGeneratedAt = &v
	}
	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapToResponse(p)
	}
	return resp
}
