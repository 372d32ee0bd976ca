package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/metrics"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

var assessmentFormDependents = deps("assessments", "form_id")

// AssessmentFormService defines the interface for assessment form business logic
type AssessmentFormService interface {
	Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest) (*dto.GridResponse[domain.AssessmentForm], error)
	List(ctx context.Context, tc tenant.Context, search string) ([]domain.AssessmentForm, error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.AssessmentForm, error)
	Add(ctx context.Context, tc tenant.Context, req dto.AssessmentFormRequest) (*domain.AssessmentForm, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.AssessmentFormRequest) (*domain.AssessmentForm, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
	GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error)
}

type assessmentFormServiceImpl struct {
	repo    repository.AssessmentFormRepository
	related repository.RelatedRepository
	tx      Transactor
	logger  *zap.Logger
}

// NewAssessmentFormService creates a new instance of AssessmentFormService
func NewAssessmentFormService(repo repository.AssessmentFormRepository, related repository.RelatedRepository, tx Transactor, logger *zap.Logger) AssessmentFormService {
	return &assessmentFormServiceImpl{repo: repo, related: related, tx: tx, logger: logger}
}

func (s *assessmentFormServiceImpl) Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest) (*dto.GridResponse[domain.AssessmentForm], error) {
	q := gridQuery(req)
	forms, total, err := s.repo.Grid(ctx, tc.SpaceID, q)
	if err != nil {
		return nil, response.Wrap("Failed to load assessment forms", err)
	}
	return toGrid(forms, total, q), nil
}

func (s *assessmentFormServiceImpl) List(ctx context.Context, tc tenant.Context, search string) ([]domain.AssessmentForm, error) {
	forms, err := s.repo.List(ctx, tc.SpaceID, search)
	if err != nil {
		return nil, response.Wrap("Failed to load assessment forms", err)
	}
	return forms, nil
}

func (s *assessmentFormServiceImpl) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.AssessmentForm, error) {
	form, err := s.repo.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeAssessmentFormNotFound, err)
	}
	return form, nil
}

func (s *assessmentFormServiceImpl) Add(ctx context.Context, tc tenant.Context, req dto.AssessmentFormRequest) (*domain.AssessmentForm, error) {
	form := &domain.AssessmentForm{SpaceID: tc.SpaceID}
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		return s.save(ctx, tc, form, req, true)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, form.ID)
}

func (s *assessmentFormServiceImpl) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.AssessmentFormRequest) (*domain.AssessmentForm, error) {
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		form, err := s.repo.FindByID(ctx, tc.SpaceID, id)
		if err != nil {
			return lookupErr(response.CodeAssessmentFormNotFound, err)
		}
		return s.save(ctx, tc, form, req, false)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, id)
}

// save writes the form header and then syncs categories and rows: ids in
// the payload are updated, new entries created, the rest pruned.
func (s *assessmentFormServiceImpl) save(ctx context.Context, tc tenant.Context, form *domain.AssessmentForm, req dto.AssessmentFormRequest, create bool) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return response.NewValidationError("Title is required", "title")
	}
	exists, err := s.repo.TitleExists(ctx, tc.SpaceID, title, form.ID)
	if err != nil {
		return response.Wrap("Failed to check title", err)
	}
	if exists {
		return response.NewAppError(response.CodeDuplicateTitle, response.Lookup(response.CodeDuplicateTitle).Message, title)
	}

	stored := map[uuid.UUID]domain.AssessmentCategory{}
	for _, c := range form.Categories {
		stored[c.ID] = c
	}

	form.Title = title
	form.Categories = nil
	if create {
		err = s.repo.Create(ctx, form)
	} else {
		err = s.repo.Update(ctx, form)
	}
	if err != nil {
		return response.Wrap("Failed to save assessment form", err)
	}

	keep := make([]uuid.UUID, 0, len(req.Categories))
	for _, cr := range req.Categories {
		id, err := s.saveCategory(ctx, form.ID, stored, cr)
		if err != nil {
			return err
		}
		keep = append(keep, id)
	}
	if err := s.repo.PruneCategories(ctx, form.ID, keep); err != nil {
		return response.Wrap("Failed to prune assessment categories", err)
	}
	return nil
}

func (s *assessmentFormServiceImpl) saveCategory(ctx context.Context, formID uuid.UUID, stored map[uuid.UUID]domain.AssessmentCategory, req dto.AssessmentCategoryRequest) (uuid.UUID, error) {
	category := domain.AssessmentCategory{FormID: formID}
	storedRows := map[uuid.UUID]domain.AssessmentCategoryRow{}
	if req.ID != nil {
		existing, ok := stored[*req.ID]
		if !ok {
			return uuid.Nil, response.New(response.CodeAssessmentCategoryNotFound)
		}
		category = existing
		for _, r := range existing.Rows {
			storedRows[r.ID] = r
		}
	}

	category.Title = strings.TrimSpace(req.Title)
	category.MultiItem = req.MultiItem
	category.DisplayOrder = req.DisplayOrder
	category.Rows = nil

	var err error
	if req.ID == nil {
		err = s.repo.CreateCategory(ctx, &category)
	} else {
		err = s.repo.UpdateCategory(ctx, &category)
	}
	if err != nil {
		return uuid.Nil, response.Wrap("Failed to save assessment category", err)
	}

	keep := make([]uuid.UUID, 0, len(req.Rows))
	for _, rr := range req.Rows {
		row := domain.AssessmentCategoryRow{
			CategoryID:   category.ID,
			Title:        strings.TrimSpace(rr.Title),
			Score:        rr.Score,
			DisplayOrder: rr.DisplayOrder,
		}
		if rr.ID != nil {
			existing, ok := storedRows[*rr.ID]
			if !ok {
				return uuid.Nil, response.New(response.CodeAssessmentRowNotFound)
			}
			row.BaseModel = existing.BaseModel
			err = s.repo.UpdateRow(ctx, &row)
		} else {
			err = s.repo.CreateRow(ctx, &row)
		}
		if err != nil {
			return uuid.Nil, response.Wrap("Failed to save assessment row", err)
		}
		keep = append(keep, row.ID)
	}
	if err := s.repo.PruneRows(ctx, category.ID, keep); err != nil {
		return uuid.Nil, response.Wrap("Failed to prune assessment rows", err)
	}
	return category.ID, nil
}

func (s *assessmentFormServiceImpl) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

// RemoveBulk deletes forms together with the assessments taken on them.
func (s *assessmentFormServiceImpl) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	return removeAll(ctx, s.tx, ids, response.CodeAssessmentFormNotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.repo.DeleteByIDs(ctx, tc.SpaceID, ids)
	})
}

func (s *assessmentFormServiceImpl) GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, response.New(response.CodeAssessmentFormNotFound)
	}
	if _, err := requireIDs(ctx, ids, response.CodeAssessmentFormNotFound, s.repo.FindByIDs, tc.SpaceID); err != nil {
		return nil, err
	}
	return relatedInfo(ctx, s.related, assessmentFormDependents, ids)
}

// AssessmentService defines the interface for lead assessments
type AssessmentService interface {
	Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.AssessmentFilter) (*dto.GridResponse[domain.Assessment], error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Assessment, error)
	Add(ctx context.Context, tc tenant.Context, req dto.AssessmentRequest) (*domain.Assessment, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.AssessmentRequest) (*domain.Assessment, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
}

// AssessmentServiceDeps are the collaborators of AssessmentService
type AssessmentServiceDeps struct {
	Assessments repository.AssessmentRepository
	Forms       repository.AssessmentFormRepository
	Leads       repository.LeadRepository
	Users       repository.UserRepository
	Tx          Transactor
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

type assessmentServiceImpl struct {
	AssessmentServiceDeps
}

// NewAssessmentService creates a new instance of AssessmentService
func NewAssessmentService(d AssessmentServiceDeps) AssessmentService {
	return &assessmentServiceImpl{d}
}

func (s *assessmentServiceImpl) Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.AssessmentFilter) (*dto.GridResponse[domain.Assessment], error) {
	q := gridQuery(req)
	items, total, err := s.Assessments.Grid(ctx, tc.SpaceID, q, f)
	if err != nil {
		return nil, response.Wrap("Failed to load assessments", err)
	}
	return toGrid(items, total, q), nil
}

func (s *assessmentServiceImpl) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Assessment, error) {
	assessment, err := s.Assessments.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeAssessmentNotFound, err)
	}
	return assessment, nil
}

func (s *assessmentServiceImpl) Add(ctx context.Context, tc tenant.Context, req dto.AssessmentRequest) (*domain.Assessment, error) {
	assessment := &domain.Assessment{SpaceID: tc.SpaceID}
	if err := s.save(ctx, tc, assessment, req, true); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, assessment.ID)
}

func (s *assessmentServiceImpl) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.AssessmentRequest) (*domain.Assessment, error) {
	assessment, err := s.Assessments.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeAssessmentNotFound, err)
	}
	if err := s.save(ctx, tc, assessment, req, false); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, id)
}

func (s *assessmentServiceImpl) save(ctx context.Context, tc tenant.Context, assessment *domain.Assessment, req dto.AssessmentRequest, create bool) error {
	err := s.Tx.Do(ctx, func(ctx context.Context) error {
		if req.LeadID != nil {
			if _, err := requireIDs(ctx, []uuid.UUID{*req.LeadID}, response.CodeLeadNotFound, s.Leads.FindByIDs, tc.SpaceID); err != nil {
				return err
			}
		}
		if req.PerformedByID != nil {
			if _, err := s.Users.FindByID(ctx, tc.SpaceID, *req.PerformedByID); err != nil {
				return lookupErr(response.CodeUserNotFound, err)
			}
		}
		form, err := s.Forms.FindByID(ctx, tc.SpaceID, req.FormID)
		if err != nil {
			return lookupErr(response.CodeAssessmentFormNotFound, err)
		}

		assessment.LeadID = req.LeadID
		assessment.FormID = form.ID
		assessment.Date = req.Date
		assessment.PerformedByID = req.PerformedByID
		assessment.Notes = req.Notes
		assessment.Form = nil
		assessment.PerformedBy = nil
		assessment.Rows = nil

		if create {
			err = s.Assessments.Create(ctx, assessment)
		} else {
			err = s.Assessments.Update(ctx, assessment)
		}
		if err != nil {
			return response.Wrap("Failed to save assessment", err)
		}

		if err := s.saveRows(ctx, assessment, form, req.RowIDs); err != nil {
			return err
		}
		return s.calculateTotalScore(ctx, assessment)
	})
	if err != nil {
		return err
	}
	s.Metrics.IncrementAssessmentScored()
	return nil
}

// saveRows replaces the selected rows of assessment with rowIDs.
func (s *assessmentServiceImpl) saveRows(ctx context.Context, assessment *domain.Assessment, form *domain.AssessmentForm, rowIDs []uuid.UUID) error {
	if err := s.Assessments.DeleteRows(ctx, assessment.ID); err != nil {
		return response.Wrap("Failed to clear assessment rows", err)
	}
	rows, err := selectRows(form, rowIDs)
	if err != nil {
		return err
	}
	for i := range rows {
		rows[i].AssessmentID = assessment.ID
		if err := s.Assessments.CreateRow(ctx, &rows[i]); err != nil {
			return response.Wrap("Failed to save assessment row", err)
		}
	}
	return nil
}

// calculateTotalScore stores the sum of the persisted row scores.
func (s *assessmentServiceImpl) calculateTotalScore(ctx context.Context, assessment *domain.Assessment) error {
	total, err := s.Assessments.SumScore(ctx, assessment.ID)
	if err != nil {
		return response.Wrap("Failed to sum assessment score", err)
	}
	if err := s.Assessments.UpdateScore(ctx, assessment.ID, total); err != nil {
		return response.Wrap("Failed to store assessment score", err)
	}
	assessment.Score = total
	return nil
}

// selectRows resolves rowIDs against the form. Each id must be a row of
// the form and a single-item category accepts one selection. Repeated ids
// count once.
func selectRows(form *domain.AssessmentForm, rowIDs []uuid.UUID) ([]domain.AssessmentRow, error) {
	type located struct {
		category *domain.AssessmentCategory
		row      *domain.AssessmentCategoryRow
	}
	index := map[uuid.UUID]located{}
	for i := range form.Categories {
		c := &form.Categories[i]
		for j := range c.Rows {
			index[c.Rows[j].ID] = located{category: c, row: &c.Rows[j]}
		}
	}

	selected := map[uuid.UUID]bool{}
	ids := dedupe(rowIDs)
	rows := make([]domain.AssessmentRow, 0, len(ids))
	for _, id := range ids {
		loc, ok := index[id]
		if !ok {
			return nil, response.New(response.CodeAssessmentRowNotFound)
		}
		if !loc.category.MultiItem && selected[loc.category.ID] {
			return nil, response.NewAppError(response.CodeAssessmentCategoryMultiple,
				response.Lookup(response.CodeAssessmentCategoryMultiple).Message, loc.category.Title)
		}
		selected[loc.category.ID] = true
		rows = append(rows, domain.AssessmentRow{RowID: id, Score: loc.row.Score})
	}
	return rows, nil
}

func (s *assessmentServiceImpl) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

func (s *assessmentServiceImpl) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	return removeAll(ctx, s.Tx, ids, response.CodeAssessmentNotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.Assessments.DeleteByIDs(ctx, tc.SpaceID, ids)
	})
}
