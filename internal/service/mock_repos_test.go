package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hireloop/backend/internal/model"
	"hireloop/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users   map[string]*model.User
	counter int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.counter++
		user.UserID = fmt.Sprintf("user-%03d", m.counter)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if filters != nil {
			if filters.Role != "" && u.Role != filters.Role {
				continue
			}
			if filters.Keyword != "" && !strings.Contains(u.Name, filters.Keyword) &&
				!strings.Contains(u.Email, filters.Keyword) {
				continue
			}
		}
		all = append(all, *u)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

// ── Mock JobRepository ──

type mockJobRepo struct {
	jobs    map[string]*model.Job
	counter int
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: make(map[string]*model.Job)}
}

func (m *mockJobRepo) Create(_ context.Context, job *model.Job) error {
	if job.JobID == "" {
		m.counter++
		job.JobID = fmt.Sprintf("job-%03d", m.counter)
	}
	m.jobs[job.JobID] = job
	return nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id string) (*model.Job, error) {
	if j, ok := m.jobs[id]; ok {
		return j, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJobRepo) Update(_ context.Context, job *model.Job) error {
	m.jobs[job.JobID] = job
	return nil
}

func (m *mockJobRepo) UpdateStatus(_ context.Context, jobID, status string, _ string) error {
	if j, ok := m.jobs[jobID]; ok {
		j.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockJobRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.jobs, id)
	return nil
}

func (m *mockJobRepo) List(_ context.Context, filters *repository.JobListFilters, offset, limit int) ([]model.Job, int64, error) {
	var all []model.Job
	for _, j := range m.jobs {
		if filters != nil {
			if filters.EmployerID != "" && j.EmployerID != filters.EmployerID {
				continue
			}
			if filters.Status != "" && j.Status != filters.Status {
				continue
			}
			if filters.Keyword != "" && !strings.Contains(j.Title, filters.Keyword) {
				continue
			}
		}
		all = append(all, *j)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	order       []string
	counter     int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

// Create 模拟数据库部分唯一索引：同 (job, recruiter) 已有非终态记录时报重复键
func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	for _, a := range m.assignments {
		if a.JobID == assignment.JobID && a.RecruiterID == assignment.RecruiterID && !a.Status.Terminal() {
			return gorm.ErrDuplicatedKey
		}
	}
	if assignment.AssignmentID == "" {
		m.counter++
		assignment.AssignmentID = fmt.Sprintf("asg-%03d", m.counter)
	}
	if assignment.Version == 0 {
		assignment.Version = 1
	}
	m.assignments[assignment.AssignmentID] = assignment
	m.order = append(m.order, assignment.AssignmentID)
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) GetByIDForUpdate(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) UpdateStatus(_ context.Context, assignment *model.Assignment, updatedBy string) (int64, error) {
	stored, ok := m.assignments[assignment.AssignmentID]
	if !ok || stored.Version != assignment.Version {
		return 0, nil
	}
	stored.Status = assignment.Status
	stored.RespondedAt = assignment.RespondedAt
	stored.CompletedAt = assignment.CompletedAt
	stored.UpdatedAt = time.Now()
	stored.UpdatedBy = &updatedBy
	stored.Version++
	return 1, nil
}

func (m *mockAssignmentRepo) ExistsLivePair(_ context.Context, jobID, recruiterID string) (bool, error) {
	for _, a := range m.assignments {
		if a.JobID == jobID && a.RecruiterID == recruiterID && !a.Status.Terminal() {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAssignmentRepo) ExistsForTriple(_ context.Context, jobID, employerID, recruiterID string) (bool, error) {
	for _, a := range m.assignments {
		if a.JobID == jobID && a.EmployerID == employerID && a.RecruiterID == recruiterID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAssignmentRepo) CountLiveForJob(_ context.Context, jobID string) (int64, error) {
	var count int64
	for _, a := range m.assignments {
		if a.JobID == jobID && !a.Status.Terminal() {
			count++
		}
	}
	return count, nil
}

func (m *mockAssignmentRepo) List(_ context.Context, filters *repository.AssignmentListFilters, offset, limit int) ([]model.Assignment, int64, error) {
	var all []model.Assignment
	for _, id := range m.order {
		a := m.assignments[id]
		if filters != nil {
			if filters.EmployerID != "" && a.EmployerID != filters.EmployerID {
				continue
			}
			if filters.RecruiterID != "" && a.RecruiterID != filters.RecruiterID {
				continue
			}
			if filters.JobID != "" && a.JobID != filters.JobID {
				continue
			}
			if filters.Status != "" && a.Status != filters.Status {
				continue
			}
		}
		all = append(all, *a)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

// ── Mock JobRecruiterRepository ──

type mockJobRecruiterRepo struct {
	records []model.JobRecruiter
}

func newMockJobRecruiterRepo() *mockJobRecruiterRepo {
	return &mockJobRecruiterRepo{}
}

func (m *mockJobRecruiterRepo) ListInBatches(_ context.Context, batchSize int, fn func(records []model.JobRecruiter) error) error {
	if batchSize <= 0 {
		batchSize = 200
	}
	for start := 0; start < len(m.records); start += batchSize {
		end := start + batchSize
		if end > len(m.records) {
			end = len(m.records)
		}
		if err := fn(m.records[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockJobRecruiterRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.records)), nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	submissions map[string]*model.Submission
	order       []string
	counter     int
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{submissions: make(map[string]*model.Submission)}
}

// Create 模拟 (job_id, candidate_id) 唯一索引
func (m *mockSubmissionRepo) Create(_ context.Context, submission *model.Submission) error {
	for _, s := range m.submissions {
		if s.JobID == submission.JobID && s.CandidateID == submission.CandidateID {
			return gorm.ErrDuplicatedKey
		}
	}
	if submission.SubmissionID == "" {
		m.counter++
		submission.SubmissionID = fmt.Sprintf("sub-%03d", m.counter)
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}
	m.submissions[submission.SubmissionID] = submission
	m.order = append(m.order, submission.SubmissionID)
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	if s, ok := m.submissions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) ExistsForJobAndCandidate(_ context.Context, jobID, candidateID string) (bool, error) {
	for _, s := range m.submissions {
		if s.JobID == jobID && s.CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubmissionRepo) List(_ context.Context, filters *repository.SubmissionListFilters, offset, limit int) ([]model.Submission, int64, error) {
	var all []model.Submission
	for _, id := range m.order {
		s := m.submissions[id]
		if filters != nil {
			if filters.EmployerID != "" && s.EmployerID != filters.EmployerID {
				continue
			}
			if filters.RecruiterID != "" && s.RecruiterID != filters.RecruiterID {
				continue
			}
			if filters.CandidateID != "" && s.CandidateID != filters.CandidateID {
				continue
			}
			if filters.JobID != "" && s.JobID != filters.JobID {
				continue
			}
		}
		all = append(all, *s)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
	counter       int
	createErr     error // 非 nil 时 Create 返回该错误（验证尽力而为语义）
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.counter++
	notification.NotificationID = fmt.Sprintf("ntf-%03d", m.counter)
	m.notifications = append(m.notifications, notification)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var all []model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		all = append(all, *n)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, notificationID, userID string) (int64, error) {
	for _, n := range m.notifications {
		if n.NotificationID == notificationID && n.UserID == userID {
			n.IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// forUser 按接收人过滤（测试断言用）
func (m *mockNotificationRepo) forUser(userID string) []*model.Notification {
	var result []*model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result
}

// ── Mock ContactRepository ──

type mockContactRepo struct {
	contacts map[string]*model.Contact
	counter  int
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{contacts: make(map[string]*model.Contact)}
}

// Create 模拟 (employer_id, recruiter_id) 唯一索引
func (m *mockContactRepo) Create(_ context.Context, contact *model.Contact) error {
	for _, c := range m.contacts {
		if c.EmployerID == contact.EmployerID && c.RecruiterID == contact.RecruiterID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.counter++
	contact.ContactID = fmt.Sprintf("ctc-%03d", m.counter)
	m.contacts[contact.ContactID] = contact
	return nil
}

func (m *mockContactRepo) GetByID(_ context.Context, id string) (*model.Contact, error) {
	if c, ok := m.contacts[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContactRepo) GetByPair(_ context.Context, employerID, recruiterID string) (*model.Contact, error) {
	for _, c := range m.contacts {
		if c.EmployerID == employerID && c.RecruiterID == recruiterID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContactRepo) Update(_ context.Context, contact *model.Contact) error {
	m.contacts[contact.ContactID] = contact
	return nil
}

func (m *mockContactRepo) ListForUser(_ context.Context, userID string, offset, limit int) ([]model.Contact, int64, error) {
	var all []model.Contact
	for _, c := range m.contacts {
		if c.EmployerID == userID || c.RecruiterID == userID {
			all = append(all, *c)
		}
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

// ── 公共辅助 ──

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// mockRepos 聚合全部 mock，组装成 Service 层可用的 Repository
type mockRepos struct {
	user         *mockUserRepo
	job          *mockJobRepo
	assignment   *mockAssignmentRepo
	jobRecruiter *mockJobRecruiterRepo
	submission   *mockSubmissionRepo
	notification *mockNotificationRepo
	contact      *mockContactRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		user:         newMockUserRepo(),
		job:          newMockJobRepo(),
		assignment:   newMockAssignmentRepo(),
		jobRecruiter: newMockJobRecruiterRepo(),
		submission:   newMockSubmissionRepo(),
		notification: newMockNotificationRepo(),
		contact:      newMockContactRepo(),
	}
	repo := &repository.Repository{
		User:         m.user,
		Job:          m.job,
		Assignment:   m.assignment,
		JobRecruiter: m.jobRecruiter,
		Submission:   m.submission,
		Notification: m.notification,
		Contact:      m.contact,
	}
	return repo, m
}
