package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/metrics"
	"github.com/omotosho-cloud/church-visitor-manager/internal/repository"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

type CreateMemberInput struct {
	Name             string                  `json:"name" binding:"required"`
	Phone            string                  `json:"phone" binding:"required"`
	Email            string                  `json:"email"`
	Gender           string                  `json:"gender" binding:"required"`
	Category         domain.MemberCategory   `json:"category"`
	MembershipStatus domain.MembershipStatus `json:"membership_status"`
	BirthMonth       int                     `json:"birth_month"`
	BirthDay         int                     `json:"birth_day"`
	MaritalStatus    string                  `json:"marital_status"`
	AnniversaryMonth int                     `json:"anniversary_month"`
	AnniversaryDay   int                     `json:"anniversary_day"`
	Address          string                  `json:"address"`
	Notes            string                  `json:"notes"`
	JoinDate         string                  `json:"join_date"`
}

type MemberService interface {
	Create(ctx context.Context, input CreateMemberInput) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	Update(ctx context.Context, id int64, input CreateMemberInput) (*domain.Member, error)
	Delete(ctx context.Context, id int64) error
	// Imports a CSV of members, columns: name, phone, email, gender,
	// category, status, address, notes. Invalid and duplicate rows are
	// counted and skipped.
	BulkImport(ctx context.Context, r io.Reader) (BulkReport, error)
}

type memberService struct {
	memberRepo repository.MemberRepository
	logger     zerolog.Logger
}

func NewMemberService(memberRepo repository.MemberRepository, logger zerolog.Logger) MemberService {
	return &memberService{
		memberRepo: memberRepo,
		logger:     logger.With().Str("component", "members").Logger(),
	}
}

func (s *memberService) buildMember(input CreateMemberInput) *domain.Member {
	category := input.Category
	if category == "" {
		category = domain.CategoryAdult
	}
	status := input.MembershipStatus
	if status == "" {
		status = domain.MembershipActive
	}
	joinDate := input.JoinDate
	if joinDate == "" {
		joinDate = time.Now().Format("2006-01-02")
	}

	return &domain.Member{
		Name:             input.Name,
		Phone:            input.Phone,
		Email:            input.Email,
		Gender:           strings.ToLower(input.Gender),
		Category:         category,
		MembershipStatus: status,
		BirthMonth:       input.BirthMonth,
		BirthDay:         input.BirthDay,
		MaritalStatus:    input.MaritalStatus,
		AnniversaryMonth: input.AnniversaryMonth,
		AnniversaryDay:   input.AnniversaryDay,
		Address:          input.Address,
		Notes:            input.Notes,
		JoinDate:         joinDate,
	}
}

func (s *memberService) Create(ctx context.Context, input CreateMemberInput) (*domain.Member, error) {
	if input.Name == "" || input.Phone == "" || input.Gender == "" {
		return nil, fmt.Errorf("missing required fields")
	}

	exists, err := s.memberRepo.ExistsByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, types.ErrDuplicatePhone
	}

	member := s.buildMember(input)
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) List(ctx context.Context) ([]domain.Member, error) {
	return s.memberRepo.List(ctx)
}

func (s *memberService) Update(ctx context.Context, id int64, input CreateMemberInput) (*domain.Member, error) {
	member := s.buildMember(input)
	member.ID = id
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, id int64) error {
	return s.memberRepo.Delete(ctx, id)
}

func (s *memberService) BulkImport(ctx context.Context, r io.Reader) (BulkReport, error) {
	var report BulkReport

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Header row is positional for member imports.
	if _, err := reader.Read(); err != nil {
		return report, fmt.Errorf("CSV file is empty")
	}

	at := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Errors++
			metrics.RecordBatchItem("member_import", false)
			continue
		}

		input := CreateMemberInput{
			Name:             at(row, 0),
			Phone:            at(row, 1),
			Email:            at(row, 2),
			Gender:           at(row, 3),
			Category:         domain.MemberCategory(strings.ToLower(at(row, 4))),
			MembershipStatus: domain.MembershipStatus(strings.ToLower(at(row, 5))),
			Address:          at(row, 6),
			Notes:            at(row, 7),
		}

		if _, err := s.Create(ctx, input); err != nil {
			report.Errors++
			metrics.RecordBatchItem("member_import", false)
			continue
		}
		report.Success++
		metrics.RecordBatchItem("member_import", true)
	}

	return report, nil
}
