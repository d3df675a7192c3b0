package app

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/secondary"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ============================================================================
// Mock Implementations
// ============================================================================

// mockReminderRepo implements secondary.ReminderAssignmentRepository with
// in-memory maps mirroring the two association tables.
type mockReminderRepo struct {
	mu          sync.Mutex
	slots       map[int64]int64  // bucket -> slot
	assignments map[string]int64 // assignment -> bucket
	nextSlot    int64
	insertErr   error
	getErr      error
	updateErr   error
	deleteErr   error
}

func newMockReminderRepo() *mockReminderRepo {
	return &mockReminderRepo{
		slots:       make(map[int64]int64),
		assignments: make(map[string]int64),
	}
}

func (m *mockReminderRepo) Insert(ctx context.Context, assignmentID string, bucketTime int64) (*models.ReminderAssignment, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.slots[bucketTime]
	if !ok {
		m.nextSlot++
		slot = m.nextSlot
		m.slots[bucketTime] = slot
	}
	m.assignments[assignmentID] = bucketTime

	return &models.ReminderAssignment{AssignmentID: assignmentID, BucketTime: bucketTime, SlotID: slot}, nil
}

func (m *mockReminderRepo) Get(ctx context.Context, assignmentID string) (*models.ReminderAssignment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.assignments[assignmentID]
	if !ok {
		return nil, nil
	}
	slot, ok := m.slots[bucket]
	if !ok {
		return nil, nil
	}
	return &models.ReminderAssignment{AssignmentID: assignmentID, BucketTime: bucket, SlotID: slot}, nil
}

func (m *mockReminderRepo) UpdateOrInsert(ctx context.Context, assignmentID string, newBucketTime, oldBucketTime int64) (*models.ReminderAssignment, bool, error) {
	if m.updateErr != nil {
		return nil, false, m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.assignments, assignmentID)
	oldGone := m.countForBucket(oldBucketTime) == 0
	if oldGone {
		delete(m.slots, oldBucketTime)
	}

	slot, ok := m.slots[newBucketTime]
	if !ok {
		m.nextSlot++
		slot = m.nextSlot
		m.slots[newBucketTime] = slot
	}
	m.assignments[assignmentID] = newBucketTime

	return &models.ReminderAssignment{AssignmentID: assignmentID, BucketTime: newBucketTime, SlotID: slot}, oldGone, nil
}

func (m *mockReminderRepo) Delete(ctx context.Context, assignmentID string) (bool, int64, error) {
	if m.deleteErr != nil {
		return false, 0, m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.assignments[assignmentID]
	if !ok {
		return false, 0, nil
	}
	slot := m.slots[bucket]
	delete(m.assignments, assignmentID)
	if m.countForBucket(bucket) == 0 {
		delete(m.slots, bucket)
		return true, slot, nil
	}
	return false, 0, nil
}

func (m *mockReminderRepo) AssignmentsForBucket(ctx context.Context, bucketTime int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []string
	for id, bucket := range m.assignments {
		if bucket == bucketTime {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// countForBucket counts referents; callers hold the lock.
func (m *mockReminderRepo) countForBucket(bucket int64) int {
	count := 0
	for _, b := range m.assignments {
		if b == bucket {
			count++
		}
	}
	return count
}

// mockAssignmentRepo implements secondary.TaskAssignmentRepository and
// records the mutating calls for assertions.
type mockAssignmentRepo struct {
	assignments map[string]*models.TaskAssignment
	listErr     error

	deleteCalls  [][]string
	replaceCalls [][]*models.TaskAssignment
	replaceErr   error
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{
		assignments: make(map[string]*models.TaskAssignment),
	}
}

func (m *mockAssignmentRepo) add(a *models.TaskAssignment) {
	m.assignments[a.ID] = a
}

func (m *mockAssignmentRepo) GetByID(ctx context.Context, id string) (*models.TaskAssignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, &secondary.NotFoundError{ID: id}
}

func (m *mockAssignmentRepo) List(ctx context.Context, dueAfter int64) ([]*models.TaskAssignment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.TaskAssignment
	for _, a := range m.assignments {
		if a.DueDateTime >= dueAfter {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDateTime < result[j].DueDateTime })
	return result, nil
}

func (m *mockAssignmentRepo) ListPendingUpload(ctx context.Context) ([]*models.TaskAssignment, error) {
	var result []*models.TaskAssignment
	for _, a := range m.assignments {
		if a.ShouldUpload {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAssignmentRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	m.deleteCalls = append(m.deleteCalls, ids)
	for _, id := range ids {
		delete(m.assignments, id)
	}
	return nil
}

func (m *mockAssignmentRepo) ReplaceSynced(ctx context.Context, fetched []*models.TaskAssignment) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaceCalls = append(m.replaceCalls, fetched)
	for id, a := range m.assignments {
		if !a.ShouldUpload {
			delete(m.assignments, id)
		}
	}
	for _, a := range fetched {
		if existing, ok := m.assignments[a.ID]; ok && existing.ShouldUpload {
			continue
		}
		m.assignments[a.ID] = a
	}
	return nil
}

func (m *mockAssignmentRepo) UpdateStatus(ctx context.Context, id string, status models.ProgressStatus, statusDateMillis int64) error {
	a, ok := m.assignments[id]
	if !ok {
		return &secondary.NotFoundError{ID: id}
	}
	a.ProgressStatus = status
	a.ProgressStatusDate = statusDateMillis
	a.ShouldUpload = true
	return nil
}

// mockPlatform implements secondary.AlarmPlatform and records operations.
type mockPlatform struct {
	mu          sync.Mutex
	scheduled   map[int64]int64 // slot -> atMillis
	cancelled   []int64
	dismissed   []int64
	scheduleErr error
	cancelErr   error
}

func newMockPlatform() *mockPlatform {
	return &mockPlatform{scheduled: make(map[int64]int64)}
}

func (m *mockPlatform) ScheduleOneShot(ctx context.Context, slotID int64, atMillis int64, payload secondary.AlarmPayload) error {
	if m.scheduleErr != nil {
		return m.scheduleErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduled[slotID] = atMillis
	return nil
}

func (m *mockPlatform) Cancel(ctx context.Context, slotID int64) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.scheduled, slotID)
	m.cancelled = append(m.cancelled, slotID)
	return nil
}

func (m *mockPlatform) CancelNotification(ctx context.Context, slotID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissed = append(m.dismissed, slotID)
	return nil
}

// mockAlarmHandler implements primary.AlarmHandler with call counters. When
// blockOn is set, Schedule blocks until the channel is closed, which lets
// tests hold a scheduler run in flight.
type mockAlarmHandler struct {
	mu            sync.Mutex
	scheduleCalls []string
	cancelCalls   []string
	blockOn       chan struct{}
	existing      map[string]*models.ReminderAssignment
}

func newMockAlarmHandler() *mockAlarmHandler {
	return &mockAlarmHandler{existing: make(map[string]*models.ReminderAssignment)}
}

func (m *mockAlarmHandler) Schedule(ctx context.Context, assignmentID string, showAtMillis int64) error {
	if m.blockOn != nil {
		<-m.blockOn
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduleCalls = append(m.scheduleCalls, assignmentID)
	return nil
}

func (m *mockAlarmHandler) Cancel(ctx context.Context, assignmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelCalls = append(m.cancelCalls, assignmentID)
	return nil
}

func (m *mockAlarmHandler) Reschedule(ctx context.Context, assignmentID string, newShowAtMillis int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduleCalls = append(m.scheduleCalls, assignmentID)
	return nil
}

func (m *mockAlarmHandler) GetExisting(ctx context.Context, assignmentID string) (*models.ReminderAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.existing[assignmentID], nil
}

func (m *mockAlarmHandler) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.scheduleCalls) + len(m.cancelCalls)
}

// mockAPI implements secondary.TaskAssignmentsAPI.
type mockAPI struct {
	fetchResult []*models.TaskAssignment
	fetchErr    error

	uploadCalls [][]*models.TaskAssignment
	confirmIDs  []string
	uploadErr   error
}

func (m *mockAPI) GetTaskAssignments(ctx context.Context) ([]*models.TaskAssignment, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.fetchResult, nil
}

func (m *mockAPI) UpdateTaskAssignments(ctx context.Context, assignments []*models.TaskAssignment) ([]string, error) {
	m.uploadCalls = append(m.uploadCalls, assignments)
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return m.confirmIDs, nil
}

// mockPrefs implements secondary.Preferences.
type mockPrefs struct {
	memberID string
}

func (m *mockPrefs) LoggedInMemberID() string {
	return m.memberID
}
