package employees

import (
	"context"
	"io"
	"strings"
	"time"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/domain/notifications"
	"skillsaudit/internal/platform/identity"
)

// memStore is an in-memory StoreAPI covering what the service tests
// exercise.
type memStore struct {
	employees      map[string]Employee
	skills         map[string]Skill
	qualifications map[string]Qualification
	trainings      map[string]Training
	cascadeDeleted []string
}

func newMemStore() *memStore {
	return &memStore{
		employees:      map[string]Employee{},
		skills:         map[string]Skill{},
		qualifications: map[string]Qualification{},
		trainings:      map[string]Training{},
	}
}

func (m *memStore) InsertEmployee(ctx context.Context, e Employee) error {
	m.employees[e.UID] = e
	return nil
}

func (m *memStore) GetEmployee(ctx context.Context, uid string) (Employee, error) {
	e, ok := m.employees[uid]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

func (m *memStore) ListEmployees(ctx context.Context) ([]Employee, error) {
	var list []Employee
	for _, e := range m.employees {
		list = append(list, e)
	}
	return list, nil
}

func (m *memStore) UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) error {
	e, ok := m.employees[uid]
	if !ok {
		return ErrNotFound
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&e.FirstName, update.FirstName)
	apply(&e.LastName, update.LastName)
	apply(&e.Email, update.Email)
	apply(&e.IDNumber, update.IDNumber)
	apply(&e.JobTitle, update.JobTitle)
	apply(&e.Phone, update.Phone)
	apply(&e.Department, update.Department)
	apply(&e.ProfilePictureURL, update.ProfilePictureURL)
	e.UpdatedAt = time.Now().UTC()
	m.employees[uid] = e
	return nil
}

func (m *memStore) SetCompletion(ctx context.Context, uid string, score float64) error {
	e, ok := m.employees[uid]
	if !ok {
		return ErrNotFound
	}
	e.ProfileCompletion = score
	m.employees[uid] = e
	return nil
}

func (m *memStore) DeleteEmployeeCascade(ctx context.Context, uid string) error {
	delete(m.employees, uid)
	for id, sk := range m.skills {
		if sk.EmployeeUID == uid {
			delete(m.skills, id)
		}
	}
	for id, q := range m.qualifications {
		if q.EmployeeUID == uid {
			delete(m.qualifications, id)
		}
	}
	for id, tr := range m.trainings {
		if tr.EmployeeUID == uid {
			delete(m.trainings, id)
		}
	}
	m.cascadeDeleted = append(m.cascadeDeleted, uid)
	return nil
}

func (m *memStore) InsertSkill(ctx context.Context, s Skill) error {
	m.skills[s.ID] = s
	return nil
}

func (m *memStore) GetSkill(ctx context.Context, uid, skillID string) (Skill, error) {
	s, ok := m.skills[skillID]
	if !ok || s.EmployeeUID != uid {
		return Skill{}, ErrNotFound
	}
	return s, nil
}

func (m *memStore) ListSkills(ctx context.Context, uid string) ([]Skill, error) {
	var list []Skill
	for _, s := range m.skills {
		if s.EmployeeUID == uid {
			list = append(list, s)
		}
	}
	return list, nil
}

func (m *memStore) ListAllSkills(ctx context.Context) ([]Skill, error) {
	var list []Skill
	for _, s := range m.skills {
		list = append(list, s)
	}
	return list, nil
}

func (m *memStore) UpdateSkill(ctx context.Context, uid, skillID string, update SkillUpdate) error {
	s, err := m.GetSkill(ctx, uid, skillID)
	if err != nil {
		return err
	}
	if update.Name != nil {
		s.Name = *update.Name
	}
	if update.Category != nil {
		s.Category = *update.Category
	}
	if update.Proficiency != nil {
		s.Proficiency = *update.Proficiency
	}
	if update.DateAcquired != nil {
		s.DateAcquired = *update.DateAcquired
	}
	m.skills[skillID] = s
	return nil
}

func (m *memStore) DeleteSkill(ctx context.Context, uid, skillID string) error {
	if _, err := m.GetSkill(ctx, uid, skillID); err != nil {
		return err
	}
	delete(m.skills, skillID)
	return nil
}

func (m *memStore) InsertQualification(ctx context.Context, q Qualification) error {
	m.qualifications[q.ID] = q
	return nil
}

func (m *memStore) GetQualification(ctx context.Context, uid, qualificationID string) (Qualification, error) {
	q, ok := m.qualifications[qualificationID]
	if !ok || q.EmployeeUID != uid {
		return Qualification{}, ErrNotFound
	}
	return q, nil
}

func (m *memStore) ListQualifications(ctx context.Context, uid string) ([]Qualification, error) {
	var list []Qualification
	for _, q := range m.qualifications {
		if q.EmployeeUID == uid {
			list = append(list, q)
		}
	}
	return list, nil
}

func (m *memStore) ListPendingQualifications(ctx context.Context) ([]Qualification, error) {
	var list []Qualification
	for _, q := range m.qualifications {
		if !q.IsVerified && !q.IsRejected {
			list = append(list, q)
		}
	}
	return list, nil
}

func (m *memStore) UpdateQualification(ctx context.Context, uid, qualificationID string, update QualificationUpdate) error {
	q, err := m.GetQualification(ctx, uid, qualificationID)
	if err != nil {
		return err
	}
	if update.Name != nil {
		q.Name = *update.Name
	}
	if update.Institution != nil {
		q.Institution = *update.Institution
	}
	if update.YearObtained != nil {
		q.YearObtained = *update.YearObtained
	}
	if update.Type != nil {
		q.Type = *update.Type
	}
	if update.SerialNumber != nil {
		q.SerialNumber = *update.SerialNumber
	}
	if update.DocumentURL != nil {
		q.DocumentURL = *update.DocumentURL
	}
	q.IsVerified = false
	q.IsRejected = false
	m.qualifications[qualificationID] = q
	return nil
}

func (m *memStore) SetQualificationFlags(ctx context.Context, uid, qualificationID string, verified, rejected bool) error {
	q, err := m.GetQualification(ctx, uid, qualificationID)
	if err != nil {
		return err
	}
	q.IsVerified = verified
	q.IsRejected = rejected
	m.qualifications[qualificationID] = q
	return nil
}

func (m *memStore) DeleteQualification(ctx context.Context, uid, qualificationID string) error {
	if _, err := m.GetQualification(ctx, uid, qualificationID); err != nil {
		return err
	}
	delete(m.qualifications, qualificationID)
	return nil
}

func (m *memStore) InsertTraining(ctx context.Context, t Training) error {
	m.trainings[t.ID] = t
	return nil
}

func (m *memStore) GetTraining(ctx context.Context, uid, trainingID string) (Training, error) {
	t, ok := m.trainings[trainingID]
	if !ok || t.EmployeeUID != uid {
		return Training{}, ErrNotFound
	}
	return t, nil
}

func (m *memStore) ListTrainings(ctx context.Context, uid string) ([]Training, error) {
	var list []Training
	for _, t := range m.trainings {
		if t.EmployeeUID == uid {
			list = append(list, t)
		}
	}
	return list, nil
}

func (m *memStore) ListPendingTrainings(ctx context.Context) ([]Training, error) {
	var list []Training
	for _, t := range m.trainings {
		if !t.Approved && t.Status == TrainingStatusPlanned {
			list = append(list, t)
		}
	}
	return list, nil
}

func (m *memStore) UpdateTraining(ctx context.Context, uid, trainingID string, update TrainingUpdate) error {
	t, err := m.GetTraining(ctx, uid, trainingID)
	if err != nil {
		return err
	}
	if update.Name != nil {
		t.Name = *update.Name
	}
	if update.Provider != nil {
		t.Provider = *update.Provider
	}
	if update.StartDate != nil {
		t.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		t.EndDate = *update.EndDate
	}
	t.Status = TrainingStatusPlanned
	t.Approved = false
	m.trainings[trainingID] = t
	return nil
}

func (m *memStore) SetTrainingDecision(ctx context.Context, uid, trainingID string, approved bool, status string) error {
	t, err := m.GetTraining(ctx, uid, trainingID)
	if err != nil {
		return err
	}
	t.Approved = approved
	t.Status = status
	m.trainings[trainingID] = t
	return nil
}

func (m *memStore) DeleteTraining(ctx context.Context, uid, trainingID string) error {
	if _, err := m.GetTraining(ctx, uid, trainingID); err != nil {
		return err
	}
	delete(m.trainings, trainingID)
	return nil
}

type memUserStore struct {
	users map[string]auth.User
}

func (m *memUserStore) GetUser(ctx context.Context, uid string) (auth.User, error) {
	u, ok := m.users[uid]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserStore) CreateUser(ctx context.Context, user auth.User) error {
	m.users[user.UID] = user
	return nil
}

func (m *memUserStore) SetFirstLoginDone(ctx context.Context, uid string) error { return nil }

func (m *memUserStore) AdminUIDs(ctx context.Context) ([]string, error) {
	var uids []string
	for uid, u := range m.users {
		if strings.EqualFold(u.Role, auth.RoleAdmin) {
			uids = append(uids, uid)
		}
	}
	return uids, nil
}

type memGateway struct{ nextUID string }

func (m *memGateway) SignIn(ctx context.Context, email, password string) (*identity.AuthResponse, error) {
	return &identity.AuthResponse{LocalID: m.nextUID}, nil
}

func (m *memGateway) SignUp(ctx context.Context, email, password string) (string, error) {
	return m.nextUID, nil
}

func (m *memGateway) SendPasswordReset(ctx context.Context, email string) error { return nil }

func (m *memGateway) ChangePassword(ctx context.Context, idToken, newPassword string) error {
	return nil
}

type memNotificationStore struct {
	delivered []notifications.Notification
}

func (m *memNotificationStore) Insert(ctx context.Context, n notifications.Notification) error {
	m.delivered = append(m.delivered, n)
	return nil
}

func (m *memNotificationStore) ListByRecipient(ctx context.Context, recipientUID string) ([]notifications.Notification, error) {
	var list []notifications.Notification
	for _, n := range m.delivered {
		if n.RecipientUID == recipientUID {
			list = append(list, n)
		}
	}
	return list, nil
}

func (m *memNotificationStore) MarkRead(ctx context.Context, recipientUID, notificationID string) error {
	return nil
}

func (m *memNotificationStore) MarkAllRead(ctx context.Context, recipientUID string) (int, error) {
	return 0, nil
}

func (m *memNotificationStore) DeleteByRecipient(ctx context.Context, recipientUID string) error {
	return nil
}

type memAuditStore struct {
	entries []audit.Entry
}

func (m *memAuditStore) Insert(ctx context.Context, entry audit.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memAuditStore) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return m.entries, nil
}

func (m *memAuditStore) RecentByActor(ctx context.Context, actorUID string, limit int) ([]audit.Entry, error) {
	return nil, nil
}

func (m *memAuditStore) ActionsSince(ctx context.Context, action string, since time.Time, limit int) ([]audit.Entry, error) {
	var out []audit.Entry
	for _, e := range m.entries {
		if e.Action == action && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memAuditStore) actions() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

type memBlobs struct {
	deleted []string
}

func (m *memBlobs) Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	return key, nil
}

func (m *memBlobs) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (m *memBlobs) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memBlobs) GetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "http://localhost/" + key, nil
}

func (m *memBlobs) Exists(ctx context.Context, key string) (bool, error) { return true, nil }

type fixture struct {
	svc           *Service
	store         *memStore
	users         *memUserStore
	auditStore    *memAuditStore
	notifications *memNotificationStore
	blobs         *memBlobs
}

func newFixture() *fixture {
	store := newMemStore()
	users := &memUserStore{users: map[string]auth.User{
		"admin-1": {UID: "admin-1", Role: auth.RoleAdmin},
		"admin-2": {UID: "admin-2", Role: auth.RoleAdmin},
	}}
	auditStore := &memAuditStore{}
	notifStore := &memNotificationStore{}
	blobs := &memBlobs{}

	svc := NewService(
		store,
		users,
		&memGateway{nextUID: "uid-new"},
		notifications.NewService(notifStore, users),
		audit.NewService(auditStore),
		blobs,
	)
	return &fixture{svc: svc, store: store, users: users, auditStore: auditStore, notifications: notifStore, blobs: blobs}
}

func (f *fixture) seedEmployee(uid, firstName, lastName string) {
	f.store.employees[uid] = Employee{
		UID: uid, FirstName: firstName, LastName: lastName,
		Email:     strings.ToLower(firstName) + "@example.com",
		CreatedAt: time.Now().UTC(),
	}
}
