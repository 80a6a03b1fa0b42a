package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/colegioeccos/requesthub/internal/domain"
	"github.com/colegioeccos/requesthub/internal/repository"
)

type fakePrincipalRepo struct {
	mu          sync.Mutex
	byID        map[string]*domain.Principal
	createCount int
	createErr   error
	adminEmails []string
	adminErr    error
	lastLogins  map[string]time.Time
	roleUpdates map[string]domain.Role
}

func newFakePrincipalRepo() *fakePrincipalRepo {
	return &fakePrincipalRepo{
		byID:        map[string]*domain.Principal{},
		lastLogins:  map[string]time.Time{},
		roleUpdates: map[string]domain.Role{},
	}
}

func (f *fakePrincipalRepo) add(p domain.Principal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := p
	f.byID[p.ID] = &copied
}

func (f *fakePrincipalRepo) Create(ctx context.Context, principal *domain.Principal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.createCount++
	copied := *principal
	f.byID[principal.ID] = &copied
	return nil
}

func (f *fakePrincipalRepo) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (f *fakePrincipalRepo) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePrincipalRepo) List(ctx context.Context) ([]domain.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Principal, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePrincipalRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	f.lastLogins[id] = at
	return nil
}

func (f *fakePrincipalRepo) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.Role = role
	f.roleUpdates[id] = role
	return nil
}

func (f *fakePrincipalRepo) ListAdminEmails(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adminErr != nil {
		return nil, f.adminErr
	}
	if f.adminEmails != nil {
		return f.adminEmails, nil
	}
	var out []string
	for _, p := range f.byID {
		if p.Role == domain.RoleAdmin {
			out = append(out, p.Email)
		}
	}
	return out, nil
}

type fakeRequestRepo struct {
	mu         sync.Mutex
	byID       map[string]*domain.Request
	seq        int
	createErr  error
	lastFilter repository.RequestFilter
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: map[string]*domain.Request{}}
}

func (f *fakeRequestRepo) Create(ctx context.Context, request *domain.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	request.ID = fmt.Sprintf("req-%d", f.seq)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	copied := *request
	f.byID[request.ID] = &copied
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (domain.RequestStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return "", pgx.ErrNoRows
	}
	prev := r.Status
	r.Status = status
	r.UpdatedAt = time.Now()
	return prev, nil
}

func (f *fakeRequestRepo) AppendChat(ctx context.Context, id string, message domain.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	r.Chat = append(r.Chat, message)
	return nil
}

func (f *fakeRequestRepo) ListWithFilter(ctx context.Context, filter repository.RequestFilter) ([]domain.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter

	var out []domain.Request
	for _, r := range f.byID {
		if filter.RequesterID != nil && r.RequesterID != *filter.RequesterID {
			continue
		}
		if len(filter.Types) > 0 && !containsType(filter.Types, r.Type) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, r.Status) {
			continue
		}
		if containsStatus(filter.ExcludeStatuses, r.Status) {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func containsType(list []domain.RequestType, t domain.RequestType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

func containsStatus(list []domain.RequestStatus, s domain.RequestStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type fakeAvailabilityRepo struct {
	mu       sync.Mutex
	days     map[time.Time]string
	seq      int
	addCalls [][]time.Time
	checkErr error
}

func newFakeAvailabilityRepo(days ...time.Time) *fakeAvailabilityRepo {
	f := &fakeAvailabilityRepo{days: map[time.Time]string{}}
	for _, d := range days {
		f.seq++
		f.days[domain.DayOf(d)] = fmt.Sprintf("avail-%d", f.seq)
	}
	return f
}

func (f *fakeAvailabilityRepo) ListAvailable(ctx context.Context) ([]domain.AvailabilityDate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.AvailabilityDate, 0, len(f.days))
	for day, id := range f.days {
		out = append(out, domain.AvailabilityDate{ID: id, Date: day, IsAvailable: true})
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) AddDates(ctx context.Context, dates []time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls = append(f.addCalls, dates)
	added := 0
	for _, d := range dates {
		day := domain.DayOf(d)
		if _, ok := f.days[day]; ok {
			continue
		}
		f.seq++
		f.days[day] = fmt.Sprintf("avail-%d", f.seq)
		added++
	}
	return added, nil
}

func (f *fakeAvailabilityRepo) Remove(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for day, existing := range f.days {
		if existing == id {
			delete(f.days, day)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeAvailabilityRepo) IsAvailable(ctx context.Context, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.checkErr != nil {
		return false, f.checkErr
	}
	_, ok := f.days[domain.DayOf(date)]
	return ok, nil
}

type fakeEquipmentRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Equipment
	seq  int
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{byID: map[string]*domain.Equipment{}}
}

func (f *fakeEquipmentRepo) add(equipmentType domain.EquipmentType, name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("equip-%d", f.seq)
	f.byID[id] = &domain.Equipment{ID: id, Type: equipmentType, Name: name, IsAvailable: true}
	return id
}

func (f *fakeEquipmentRepo) Create(ctx context.Context, equipment *domain.Equipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	equipment.ID = fmt.Sprintf("equip-%d", f.seq)
	equipment.CreatedAt = time.Now()
	copied := *equipment
	f.byID[equipment.ID] = &copied
	return nil
}

func (f *fakeEquipmentRepo) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEquipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Equipment, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEquipmentRepo) ListByType(ctx context.Context, equipmentType domain.EquipmentType) ([]domain.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Equipment
	for _, e := range f.byID {
		if e.Type == equipmentType {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEquipmentRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

type sentMessage struct {
	Recipients []string
	Subject    string
	Body       string
}

type captureSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (c *captureSender) Send(ctx context.Context, recipients []string, subject, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, sentMessage{Recipients: recipients, Subject: subject, Body: body})
	return nil
}

func (c *captureSender) messages() []sentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]sentMessage{}, c.sent...)
}

type staticDirectory struct {
	emails []string
	err    error
}

func (d staticDirectory) ListAdminEmails(ctx context.Context) ([]string, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.emails, nil
}

func userPrincipal(id string) *domain.Principal {
	return &domain.Principal{
		ID:          id,
		Email:       id + "@colegioeccos.com.br",
		DisplayName: "Member " + id,
		Role:        domain.RoleUser,
	}
}

func adminPrincipal(id string) *domain.Principal {
	p := userPrincipal(id)
	p.Role = domain.RoleAdmin
	return p
}
