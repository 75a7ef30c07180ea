package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-production-service/internal/article"
	"github.com/fekuna/omnipos-production-service/internal/article/dto"
	"github.com/fekuna/omnipos-production-service/internal/audit"
	auditdto "github.com/fekuna/omnipos-production-service/internal/audit/dto"
	"github.com/fekuna/omnipos-production-service/internal/auth"
	"github.com/fekuna/omnipos-production-service/internal/model"
	"github.com/fekuna/omnipos-production-service/internal/production"
	"github.com/fekuna/omnipos-production-service/pkg/cache"
	"github.com/fekuna/omnipos-production-service/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Locker serializes mutations of one article across service instances.
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

// AuditSink receives the entries produced by a committed mutation.
type AuditSink interface {
	Append(ctx context.Context, entries []*model.AuditLog) audit.Outcome
}

type Options struct {
	LockTTL time.Duration
	Now     func() time.Time
	NewID   func() string
}

type articleUseCase struct {
	repo      article.Repository
	auditRepo audit.Repository
	sink      AuditSink
	resolver  *production.Resolver
	locker    Locker
	validate  *validator.Validate
	logger    logger.ZapLogger
	lockTTL   time.Duration
	now       func() time.Time
	newID     func() string
}

func NewArticleUseCase(
	repo article.Repository,
	auditRepo audit.Repository,
	sink AuditSink,
	resolver *production.Resolver,
	locker Locker,
	log logger.ZapLogger,
	opts Options,
) article.UseCase {
	uc := &articleUseCase{
		repo:      repo,
		auditRepo: auditRepo,
		sink:      sink,
		resolver:  resolver,
		locker:    locker,
		validate:  validator.New(),
		logger:    log,
		lockTTL:   opts.LockTTL,
		now:       opts.Now,
		newID:     opts.NewID,
	}
	if uc.lockTTL <= 0 {
		uc.lockTTL = 5 * time.Second
	}
	if uc.now == nil {
		uc.now = func() time.Time { return time.Now().UTC() }
	}
	if uc.newID == nil {
		uc.newID = uuid.NewString
	}
	return uc
}

func (uc *articleUseCase) CreateArticle(ctx context.Context, input *dto.CreateArticleInput) (*dto.Result, error) {
	if err := uc.check(input); err != nil {
		return nil, err
	}
	linking := production.ParseLinkingType(input.LinkingType)

	// Product lookups are scoped by the merchant carried in the context.
	ctx = auth.WithUser(ctx, auth.UserContext{MerchantID: input.MerchantID, UserID: input.UserID})
	flow, why := uc.resolver.Resolve(ctx, input.ArticleNumber, linking)
	if why != nil {
		uc.logger.Info("using fallback floor flow",
			zap.String("article_number", input.ArticleNumber),
			zap.String("linking_type", linking.String()),
			zap.Error(why))
	}

	a, m, err := production.NewArticle(production.NewArticleParams{
		ID:              uc.newID(),
		MerchantID:      input.MerchantID,
		ArticleNumber:   input.ArticleNumber,
		OrderID:         input.OrderID,
		PlannedQuantity: input.PlannedQuantity,
		LinkingType:     linking,
		Priority:        production.ParsePriority(input.Priority),
	}, flow)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	a.Version = 1
	a.CreatedAt = now
	a.UpdatedAt = now

	corrections := a.Repair()
	if len(corrections) > 0 {
		uc.logger.Warn("consistency corrections applied",
			zap.String("article_id", a.ID),
			zap.String("op", "create article"),
			zap.Stringers("corrections", corrections))
	}

	row, err := model.ArticleFromDomain(a)
	if err != nil {
		return nil, err
	}

	var existing *production.Article
	insert := func(ctx context.Context) error {
		if input.OrderID != "" {
			found, err := uc.repo.FindByOrderLine(ctx, input.MerchantID, input.OrderID, input.ArticleNumber)
			if err != nil {
				return fmt.Errorf("failed to check order line: %w", err)
			}
			if found != nil {
				existing, err = found.ToDomain()
				return err
			}
		}
		if err := uc.repo.Create(ctx, row); err != nil {
			return fmt.Errorf("failed to create article: %w", err)
		}
		return nil
	}
	if input.OrderID == "" {
		err = insert(ctx)
	} else {
		// One article per order line, even with concurrent deliveries.
		key := fmt.Sprintf("lock:article:%s:%s:%s", input.MerchantID, input.OrderID, input.ArticleNumber)
		err = uc.locker.WithLock(ctx, key, uc.lockTTL, insert)
	}
	if err != nil {
		if errors.Is(err, cache.ErrLockNotObtained) {
			return nil, article.ErrBusy
		}
		return nil, err
	}
	if existing != nil {
		msg := fmt.Sprintf("article for order %s line %s already exists", input.OrderID, input.ArticleNumber)
		return &dto.Result{Article: existing, Warnings: []string{msg}}, nil
	}

	uc.logger.Info("article created",
		zap.String("article_id", a.ID),
		zap.String("article_number", a.ArticleNumber),
		zap.Int("planned_quantity", a.PlannedQuantity),
		zap.Strings("flow", a.Flow.Names()),
		zap.String("flow_source", string(a.Flow.Source)))

	return &dto.Result{
		Article:     a,
		Warnings:    m.Warnings,
		Corrections: corrections,
		Audit:       uc.record(ctx, a, m.Events, input.UserID),
	}, nil
}

func (uc *articleUseCase) GetArticle(ctx context.Context, merchantID, id string) (*production.Article, error) {
	return uc.load(ctx, merchantID, id)
}

func (uc *articleUseCase) ListArticles(ctx context.Context, filters *dto.ArticleFilters) ([]*production.Article, int, error) {
	if filters.MerchantID == "" {
		return nil, 0, fmt.Errorf("merchant id is required: %w", production.ErrValidation)
	}
	rows, total, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*production.Article, 0, len(rows))
	for i := range rows {
		a, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, nil
}

func (uc *articleUseCase) GetFloorStatus(ctx context.Context, merchantID, id string) ([]production.FloorStatus, error) {
	a, err := uc.load(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	return a.FloorStatuses(), nil
}

func (uc *articleUseCase) GetProgress(ctx context.Context, merchantID, id string) (int, error) {
	a, err := uc.load(ctx, merchantID, id)
	if err != nil {
		return 0, err
	}
	return a.ComputeProgress(), nil
}

func (uc *articleUseCase) UpdateCompleted(ctx context.Context, input *dto.UpdateCompletedInput) (*dto.Result, error) {
	if err := uc.check(input); err != nil {
		return nil, err
	}
	f, err := parseFloor(input.Floor)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, input.ArticleRef, "update completed", func(a *production.Article) (production.Mutation, error) {
		return a.UpdateCompleted(f, input.Quantity)
	})
}

func (uc *articleUseCase) Transfer(ctx context.Context, input *dto.TransferInput) (*dto.Result, error) {
	if err := uc.check(input); err != nil {
		return nil, err
	}
	f, err := parseFloor(input.FromFloor)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, input.ArticleRef, "transfer", func(a *production.Article) (production.Mutation, error) {
		return a.Transfer(f, input.Quantity)
	})
}

func (uc *articleUseCase) RecordGrading(ctx context.Context, input *dto.RecordGradingInput) (*dto.Result, error) {
	if err := uc.check(input); err != nil {
		return nil, err
	}
	f, err := parseFloor(input.Floor)
	if err != nil {
		return nil, err
	}
	in := production.GradingInput{
		M1:            input.M1,
		M2:            input.M2,
		M3:            input.M3,
		M4:            input.M4,
		RepairRemarks: input.RepairRemarks,
	}
	if input.RepairStatus != nil {
		rs, ok := production.ParseRepairStatus(*input.RepairStatus)
		if !ok {
			return nil, fmt.Errorf("unknown repair status %q: %w", *input.RepairStatus, production.ErrValidation)
		}
		in.RepairStatus = &rs
	}
	return uc.mutate(ctx, input.ArticleRef, "record grading", func(a *production.Article) (production.Mutation, error) {
		if input.InspectedQuantity != nil {
			return a.RecordInspection(f, *input.InspectedQuantity, in)
		}
		return a.RecordGrading(f, in)
	})
}

func (uc *articleUseCase) ShiftM2(ctx context.Context, input *dto.ShiftM2Input) (*dto.Result, error) {
	if err := uc.check(input); err != nil {
		return nil, err
	}
	f, err := parseFloor(input.Floor)
	if err != nil {
		return nil, err
	}
	shift := production.M2Shift{FromM2: input.FromM2, ToM1: input.ToM1, ToM3: input.ToM3, ToM4: input.ToM4}
	return uc.mutate(ctx, input.ArticleRef, "shift m2", func(a *production.Article) (production.Mutation, error) {
		return a.ShiftM2(f, shift)
	})
}

func (uc *articleUseCase) ConfirmFinalQuality(ctx context.Context, input *dto.ConfirmFinalQualityInput) (*dto.Result, error) {
	if err := uc.check(input); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, input.ArticleRef, "confirm final quality", func(a *production.Article) (production.Mutation, error) {
		return a.ConfirmFinalQuality(input.Confirmed, input.Remarks)
	})
}

func (uc *articleUseCase) RepairTransfer(ctx context.Context, input *dto.RepairTransferInput) (*dto.Result, error) {
	if err := uc.check(input); err != nil {
		return nil, err
	}
	from, err := parseFloor(input.FromFloor)
	if err != nil {
		return nil, err
	}
	var target *production.Floor
	if input.TargetFloor != "" {
		t, err := parseFloor(input.TargetFloor)
		if err != nil {
			return nil, err
		}
		target = &t
	}
	return uc.mutate(ctx, input.ArticleRef, "repair transfer", func(a *production.Article) (production.Mutation, error) {
		return a.RepairTransfer(from, input.Quantity, target)
	})
}

// RunConsistencyRepair persists the corrections of a standalone repair pass.
func (uc *articleUseCase) RunConsistencyRepair(ctx context.Context, ref *dto.ArticleRef) (*dto.Result, error) {
	if err := uc.check(ref); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, *ref, "consistency repair", func(a *production.Article) (production.Mutation, error) {
		return production.Mutation{}, nil
	})
}

func (uc *articleUseCase) ListAuditTrail(ctx context.Context, filters *auditdto.AuditFilters) ([]model.AuditLog, int, error) {
	if filters.MerchantID == "" {
		return nil, 0, fmt.Errorf("merchant id is required: %w", production.ErrValidation)
	}
	if filters.Floor != "" {
		f, err := parseFloor(filters.Floor)
		if err != nil {
			return nil, 0, err
		}
		filters.Floor = f.String()
	}
	return uc.auditRepo.List(ctx, filters)
}

// mutate runs op as one unit under the article lock: load, clone, apply,
// repair, persist. Audit entries are appended only after the write succeeds.
func (uc *articleUseCase) mutate(ctx context.Context, ref dto.ArticleRef, op string, apply func(a *production.Article) (production.Mutation, error)) (*dto.Result, error) {
	var (
		next        *production.Article
		m           production.Mutation
		corrections []production.Correction
	)
	key := fmt.Sprintf("lock:article:%s:%s", ref.MerchantID, ref.ArticleID)
	err := uc.locker.WithLock(ctx, key, uc.lockTTL, func(ctx context.Context) error {
		current, err := uc.load(ctx, ref.MerchantID, ref.ArticleID)
		if err != nil {
			return err
		}

		next = current.Clone()
		m, err = apply(next)
		if err != nil {
			return err
		}

		corrections = next.Repair()
		if len(corrections) > 0 {
			uc.logger.Warn("consistency corrections applied",
				zap.String("article_id", next.ID),
				zap.String("op", op),
				zap.Stringers("corrections", corrections))
		}

		next.UpdatedAt = uc.now()
		row, err := model.ArticleFromDomain(next)
		if err != nil {
			return err
		}
		if err := uc.repo.Update(ctx, row); err != nil {
			if errors.Is(err, article.ErrVersionConflict) {
				return err
			}
			return fmt.Errorf("failed to save article: %w", err)
		}
		next.Version = row.Version
		return nil
	})
	if err != nil {
		if errors.Is(err, cache.ErrLockNotObtained) {
			return nil, article.ErrBusy
		}
		return nil, err
	}

	for _, w := range m.Warnings {
		uc.logger.Warn(w, zap.String("article_id", next.ID), zap.String("op", op))
	}

	return &dto.Result{
		Article:     next,
		Warnings:    m.Warnings,
		Corrections: corrections,
		Audit:       uc.record(ctx, next, m.Events, ref.UserID),
	}, nil
}

// record stamps events with ids, actor and time and hands them to the sink.
// Failures are logged and reported but never undo the mutation.
func (uc *articleUseCase) record(ctx context.Context, a *production.Article, events []production.AuditEvent, userID string) audit.Outcome {
	if len(events) == 0 || uc.sink == nil {
		return audit.Outcome{Entries: len(events)}
	}
	now := uc.now()
	entries := make([]*model.AuditLog, len(events))
	for i, ev := range events {
		entries[i] = model.AuditLogFromEvent(uc.newID(), a, ev, userID, now)
	}
	out := uc.sink.Append(ctx, entries)
	for _, f := range out.Failures {
		uc.logger.Error("failed to append audit entry",
			zap.String("article_id", a.ID),
			zap.String("sink", f.Sink),
			zap.String("entry_id", f.EntryID),
			zap.Error(f.Err))
	}
	return out
}

func (uc *articleUseCase) load(ctx context.Context, merchantID, id string) (*production.Article, error) {
	row, err := uc.repo.FindByID(ctx, merchantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load article %s: %w", id, err)
	}
	if row == nil {
		return nil, article.ErrArticleNotFound
	}
	return row.ToDomain()
}

func (uc *articleUseCase) check(input interface{}) error {
	if err := uc.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", production.ErrValidation, err)
	}
	return nil
}

func parseFloor(name string) (production.Floor, error) {
	f, ok := production.ParseFloor(name)
	if !ok {
		return production.FloorUnknown, fmt.Errorf("unknown floor %q: %w", name, production.ErrValidation)
	}
	return f, nil
}
