package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

func TestCreateMemberAppliesDefaults(t *testing.T) {
	memberRepo := newFakeMemberRepo()
	svc := NewMemberService(memberRepo, zerolog.Nop())

	member, err := svc.Create(context.Background(), CreateMemberInput{
		Name:   "Bola Ade",
		Phone:  "08011110002",
		Gender: "Male",
	})
	require.NoError(t, err)

	assert.Equal(t, "male", member.Gender)
	assert.Equal(t, domain.CategoryAdult, member.Category)
	assert.Equal(t, domain.MembershipActive, member.MembershipStatus)
	assert.Equal(t, time.Now().Format("2006-01-02"), member.JoinDate)
}

func TestCreateMemberRejectsDuplicatePhone(t *testing.T) {
	memberRepo := newFakeMemberRepo()
	svc := NewMemberService(memberRepo, zerolog.Nop())

	input := CreateMemberInput{Name: "Bola Ade", Phone: "08011110002", Gender: "male"}
	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, types.ErrDuplicatePhone)
}

func TestUpdateMemberKeepsID(t *testing.T) {
	memberRepo := newFakeMemberRepo()
	svc := NewMemberService(memberRepo, zerolog.Nop())

	member, err := svc.Create(context.Background(), CreateMemberInput{
		Name:   "Bola Ade",
		Phone:  "08011110002",
		Gender: "male",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), member.ID, CreateMemberInput{
		Name:     "Bola Ade",
		Phone:    "08011110002",
		Gender:   "male",
		Category: domain.CategoryYouth,
	})
	require.NoError(t, err)
	assert.Equal(t, member.ID, updated.ID)
	assert.Equal(t, domain.CategoryYouth, updated.Category)

	stored, err := memberRepo.GetByID(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryYouth, stored.Category)
}

func TestBulkImportMembersCountsRows(t *testing.T) {
	memberRepo := newFakeMemberRepo()
	svc := NewMemberService(memberRepo, zerolog.Nop())

	csv := strings.Join([]string{
		"name,phone,email,gender,category,status,address,notes",
		"Bola Ade,08011110002,bola@example.com,male,youth,active,12 Broad St,",
		"Chi Eze,08011110003,,female,,,,",
		"Bola Again,08011110002,,male,,,,",
		",08011110004,,male,,,,",
	}, "\n")

	report, err := svc.BulkImport(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Success)
	assert.Equal(t, 2, report.Errors)

	members, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, domain.CategoryYouth, members[0].Category)
	// blank category falls back to adult
	assert.Equal(t, domain.CategoryAdult, members[1].Category)
}
