package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/omotosho-cloud/church-visitor-manager/internal/dispatch"
	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

type fakeVisitorRepo struct {
	mu       sync.Mutex
	visitors map[int64]*domain.Visitor
	nextID   int64
	listErr  error
}

func newFakeVisitorRepo() *fakeVisitorRepo {
	return &fakeVisitorRepo{visitors: make(map[int64]*domain.Visitor)}
}

func (r *fakeVisitorRepo) Create(_ context.Context, visitor *domain.Visitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	visitor.ID = r.nextID
	if visitor.CreatedAt.IsZero() {
		visitor.CreatedAt = time.Now()
	}
	copied := *visitor
	r.visitors[visitor.ID] = &copied
	return nil
}

func (r *fakeVisitorRepo) GetByID(_ context.Context, id int64) (*domain.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	visitor, ok := r.visitors[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	copied := *visitor
	return &copied, nil
}

func (r *fakeVisitorRepo) List(_ context.Context) ([]domain.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Visitor, 0, len(r.visitors))
	for _, v := range r.visitors {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeVisitorRepo) ListCreatedBetween(_ context.Context, start, end time.Time) ([]domain.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Visitor, 0)
	for _, v := range r.visitors {
		if !v.CreatedAt.Before(start) && !v.CreatedAt.After(end) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeVisitorRepo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.visitors {
		if v.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeVisitorRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.visitors[id]; !ok {
		return types.ErrNotFound
	}
	delete(r.visitors, id)
	return nil
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[int64]*domain.Member
	nextID  int64
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[int64]*domain.Member)}
}

func (r *fakeMemberRepo) Create(_ context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	member.ID = r.nextID
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	copied := *member
	return &copied, nil
}

func (r *fakeMemberRepo) List(_ context.Context) ([]domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMemberRepo) ListByBirthday(_ context.Context, month, day int) ([]domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Member, 0)
	for _, m := range r.members {
		if m.BirthMonth == month && m.BirthDay == day {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[member.ID]; !ok {
		return types.ErrNotFound
	}
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeMemberRepo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return types.ErrNotFound
	}
	delete(r.members, id)
	return nil
}

type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates []domain.Template
	nextID    int64
}

func newFakeTemplateRepo(templates ...domain.Template) *fakeTemplateRepo {
	repo := &fakeTemplateRepo{}
	for _, t := range templates {
		_ = repo.Create(context.Background(), &t)
	}
	return repo
}

func (r *fakeTemplateRepo) Create(_ context.Context, template *domain.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	template.ID = r.nextID
	if template.CreatedAt.IsZero() {
		template.CreatedAt = time.Now()
	}
	r.templates = append(r.templates, *template)
	return nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id int64) (*domain.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.templates {
		if t.ID == id {
			copied := t
			return &copied, nil
		}
	}
	return nil, types.ErrNotFound
}

func (r *fakeTemplateRepo) List(_ context.Context) ([]domain.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Template(nil), r.templates...), nil
}

func (r *fakeTemplateRepo) ListByTrigger(_ context.Context, trigger domain.TriggerType) ([]domain.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Template, 0)
	for _, t := range r.templates {
		if t.TriggerType == trigger {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) FirstByTrigger(_ context.Context, trigger domain.TriggerType) (*domain.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.templates {
		if t.TriggerType == trigger {
			copied := t
			return &copied, nil
		}
	}
	return nil, types.ErrNotFound
}

func (r *fakeTemplateRepo) Update(_ context.Context, template *domain.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.templates {
		if t.ID == template.ID {
			r.templates[i] = *template
			return nil
		}
	}
	return types.ErrNotFound
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.templates {
		if t.ID == id {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return nil
		}
	}
	return types.ErrNotFound
}

type fakeQueueRepo struct {
	mu     sync.Mutex
	items  []*domain.QueuedMessage
	nextID int64
}

func newFakeQueueRepo() *fakeQueueRepo {
	return &fakeQueueRepo{}
}

func (r *fakeQueueRepo) Enqueue(_ context.Context, item *domain.QueuedMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	item.ID = r.nextID
	if item.Status == "" {
		item.Status = domain.StatusPending
	}
	item.CreatedAt = time.Now()
	copied := *item
	r.items = append(r.items, &copied)
	return nil
}

func (r *fakeQueueRepo) ListDue(_ context.Context, now time.Time) ([]domain.QueuedMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.QueuedMessage, 0)
	for _, item := range r.items {
		if item.Status == domain.StatusPending && !item.ScheduledFor.After(now) {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	return out, nil
}

func (r *fakeQueueRepo) ListPending(_ context.Context) ([]domain.QueuedMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.QueuedMessage, 0)
	for _, item := range r.items {
		if item.Status == domain.StatusPending {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeQueueRepo) UpdateStatus(_ context.Context, id int64, status domain.MessageStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		// only pending rows transition, mirroring the SQL guard
		if item.ID == id && item.Status == domain.StatusPending {
			item.Status = status
		}
	}
	return nil
}

func (r *fakeQueueRepo) CountByStatus(_ context.Context) (map[domain.MessageStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.MessageStatus]int64)
	for _, item := range r.items {
		counts[item.Status]++
	}
	return counts, nil
}

func (r *fakeQueueRepo) PurgeTerminalBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	var purged int64
	for _, item := range r.items {
		if item.Status != domain.StatusPending && item.CreatedAt.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, item)
	}
	r.items = kept
	return purged, nil
}

func (r *fakeQueueRepo) byID(id int64) *domain.QueuedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id {
			copied := *item
			return &copied
		}
	}
	return nil
}

type sendCall struct {
	Phone   string
	Message string
}

type logCall struct {
	VisitorID *int64
	Name      string
	Phone     string
	Message   string
	Success   bool
}

// fakeMessaging succeeds for every phone not listed in failPhones.
type fakeMessaging struct {
	mu         sync.Mutex
	failPhones map[string]bool
	sends      []sendCall
	logs       []logCall
	churchName string
}

func newFakeMessaging(churchName string) *fakeMessaging {
	return &fakeMessaging{failPhones: make(map[string]bool), churchName: churchName}
}

func (m *fakeMessaging) Send(_ context.Context, phone, message string) dispatch.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, sendCall{Phone: phone, Message: message})
	if m.failPhones[phone] {
		return dispatch.Outcome{Success: false, Message: "All channels failed"}
	}
	return dispatch.Outcome{Success: true, Message: "Message sent"}
}

func (m *fakeMessaging) LogOutcome(_ context.Context, visitorID *int64, visitorName, phone, message string, outcome dispatch.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, logCall{
		VisitorID: visitorID,
		Name:      visitorName,
		Phone:     phone,
		Message:   message,
		Success:   outcome.Success,
	})
}

func (m *fakeMessaging) ChurchName(_ context.Context) string {
	return m.churchName
}

func (m *fakeMessaging) GetLogs(_ context.Context, _, _ int) ([]domain.MessageLog, int64, error) {
	return nil, 0, nil
}

func (m *fakeMessaging) SendBulk(_ context.Context, _ []BulkRecipient, _ string) BulkSendReport {
	return BulkSendReport{}
}

func (m *fakeMessaging) SendBirthdayReminders(_ context.Context, _ time.Time) (BirthdayReport, error) {
	return BirthdayReport{}, nil
}

type fakeSettingsRepo struct {
	settings *domain.Settings
	err      error
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*domain.Settings, error) {
	if r.err != nil {
		return nil, r.err
	}
	copied := *r.settings
	return &copied, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, settings *domain.Settings) error {
	copied := *settings
	r.settings = &copied
	return nil
}

type fakeLogRepo struct {
	mu      sync.Mutex
	entries []domain.MessageLog
	nextID  int64
}

func (r *fakeLogRepo) Create(_ context.Context, entry *domain.MessageLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	entry.ID = r.nextID
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeLogRepo) List(_ context.Context, limit, offset int) ([]domain.MessageLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.entries))
	recentFirst := make([]domain.MessageLog, len(r.entries))
	for i, entry := range r.entries {
		recentFirst[len(r.entries)-1-i] = entry
	}
	if offset >= len(recentFirst) {
		return []domain.MessageLog{}, total, nil
	}
	end := offset + limit
	if end > len(recentFirst) {
		end = len(recentFirst)
	}
	return recentFirst[offset:end], total, nil
}

func (r *fakeLogRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.MessageLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byID := make(map[int64]domain.MessageLog, len(r.entries))
	for _, entry := range r.entries {
		byID[entry.ID] = entry
	}
	out := make([]domain.MessageLog, 0, len(ids))
	for _, id := range ids {
		if entry, ok := byID[id]; ok {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeLogCache struct {
	mu     sync.Mutex
	ids    []int64
	getErr error
}

func (c *fakeLogCache) AddLogEntry(_ context.Context, logID int64, _ time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, logID)
	return nil
}

func (c *fakeLogCache) GetLogIDs(_ context.Context, page, pageSize int) ([]int64, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, 0, c.getErr
	}
	total := int64(len(c.ids))
	recentFirst := make([]int64, len(c.ids))
	for i, id := range c.ids {
		recentFirst[len(c.ids)-1-i] = id
	}
	start := (page - 1) * pageSize
	if start >= len(recentFirst) {
		return []int64{}, total, nil
	}
	end := start + pageSize
	if end > len(recentFirst) {
		end = len(recentFirst)
	}
	return recentFirst[start:end], total, nil
}
