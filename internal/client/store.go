package client

import (
	"context"
	"errors"
	"sync"

	"taskify/internal/models"
)

// AuthState adalah slice state autentikasi. Initialized membedakan
// "belum pernah cek session" dari "sudah dicek dan gagal"; sebelum
// Initialized true, view yang terproteksi harus menampilkan loading,
// bukan redirect ke login.
type AuthState struct {
	User          *models.User
	Authenticated bool
	Initialized   bool
	Loading       bool
	Err           string
}

// TaskListState adalah slice state daftar task.
type TaskListState struct {
	Tasks   []models.Task
	Loading bool
	Err     string
}

// Store menampung state client: slice auth, slice tasks, dan kontrol
// query untuk tampilan daftar. Setiap operasi remote mengikuti transisi
// pending -> fulfilled/rejected. Store aman dipakai dari beberapa
// goroutine; panggilan remote berjalan di luar lock.
type Store struct {
	mu  sync.Mutex
	api *Client

	auth  AuthState
	tasks TaskListState

	searchQuery  string
	filterStatus string
	sortField    SortField
	sortOrder    SortOrder
	currentPage  int
}

func NewStore(api *Client) *Store {
	return &Store{
		api:          api,
		tasks:        TaskListState{Tasks: []models.Task{}},
		filterStatus: StatusAll,
		sortOrder:    Ascending,
		currentPage:  1,
	}
}

// Auth mengembalikan salinan state auth saat ini.
func (s *Store) Auth() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth
}

// TaskList mengembalikan salinan state daftar task saat ini.
func (s *Store) TaskList() TaskListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.tasks
	state.Tasks = append([]models.Task(nil), s.tasks.Tasks...)
	return state
}

// errorMessage mengambil message dari server bila ada, selain itu pakai
// fallback generik.
func errorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func (s *Store) beginAuth() {
	s.mu.Lock()
	s.auth.Loading = true
	s.auth.Err = ""
	s.mu.Unlock()
}

func (s *Store) beginTasks() {
	s.mu.Lock()
	s.tasks.Loading = true
	s.tasks.Err = ""
	s.mu.Unlock()
}

// Login melakukan autentikasi dan menyimpan user pada state.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.beginAuth()
	user, err := s.api.Login(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.Loading = false
	if err != nil {
		s.auth.Err = errorMessage(err, "Login failed")
		return err
	}
	s.auth.User = user
	s.auth.Authenticated = true
	return nil
}

// Register membuat akun baru; seperti di login, user langsung dianggap
// terautentikasi.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	s.beginAuth()
	user, err := s.api.Register(ctx, name, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.Loading = false
	if err != nil {
		s.auth.Err = errorMessage(err, "Registration failed")
		return err
	}
	s.auth.User = user
	s.auth.Authenticated = true
	return nil
}

// Logout menghapus session; state auth dikosongkan walaupun server
// gagal dihubungi, karena logout idempotent.
func (s *Store) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.User = nil
	s.auth.Authenticated = false
	return err
}

// CheckAuth memverifikasi session cookie yang tersisa (mis. setelah
// reload). Apa pun hasilnya, Initialized menjadi true.
func (s *Store) CheckAuth(ctx context.Context) error {
	s.beginAuth()
	user, err := s.api.Verify(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.Loading = false
	s.auth.Initialized = true
	if err != nil {
		s.auth.User = nil
		s.auth.Authenticated = false
		return err
	}
	s.auth.User = user
	s.auth.Authenticated = true
	return nil
}

// LoadTasks mengganti seluruh koleksi task dengan hasil List.
func (s *Store) LoadTasks(ctx context.Context) error {
	s.beginTasks()
	tasks, err := s.api.Tasks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Loading = false
	if err != nil {
		s.tasks.Err = errorMessage(err, "Failed to fetch tasks")
		return err
	}
	s.tasks.Tasks = tasks
	return nil
}

// AddTask membuat task baru dan menambahkannya ke akhir koleksi.
func (s *Store) AddTask(ctx context.Context, in TaskInput) error {
	s.beginTasks()
	task, err := s.api.CreateTask(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Loading = false
	if err != nil {
		s.tasks.Err = errorMessage(err, "Failed to create task")
		return err
	}
	s.tasks.Tasks = append(s.tasks.Tasks, *task)
	return nil
}

// EditTask mengirim partial update lalu mengganti task tersebut di
// tempatnya dalam koleksi.
func (s *Store) EditTask(ctx context.Context, id string, patch TaskPatch) error {
	s.beginTasks()
	task, err := s.api.UpdateTask(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Loading = false
	if err != nil {
		s.tasks.Err = errorMessage(err, "Failed to update task")
		return err
	}
	for i := range s.tasks.Tasks {
		if s.tasks.Tasks[i].ID == task.ID {
			s.tasks.Tasks[i] = *task
			break
		}
	}
	return nil
}

// RemoveTask menghapus task dari server lalu dari koleksi.
func (s *Store) RemoveTask(ctx context.Context, id string) error {
	s.beginTasks()
	err := s.api.DeleteTask(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Loading = false
	if err != nil {
		s.tasks.Err = errorMessage(err, "Failed to delete task")
		return err
	}
	kept := s.tasks.Tasks[:0]
	for _, task := range s.tasks.Tasks {
		if task.ID.Hex() != id {
			kept = append(kept, task)
		}
	}
	s.tasks.Tasks = kept
	return nil
}

// ---- kontrol query daftar task ----

// SetSearchQuery mengganti teks pencarian dan mengembalikan halaman ke 1.
func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = q
	s.currentPage = 1
}

// SetFilterStatus mengganti filter status dan mengembalikan halaman ke 1.
func (s *Store) SetFilterStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterStatus = status
	s.currentPage = 1
}

// ToggleSort memilih sort field; memilih field yang sama membalik arah.
// Halaman sengaja tidak di-reset saat sort berubah.
func (s *Store) ToggleSort(field SortField) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sortField == field {
		if s.sortOrder == Ascending {
			s.sortOrder = Descending
		} else {
			s.sortOrder = Ascending
		}
		return
	}
	s.sortField = field
	s.sortOrder = Ascending
}

// SetPage memindahkan halaman, dibatasi pada [1, TotalPages].
func (s *Store) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := TotalPages(len(s.visibleLocked()))
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	s.currentPage = page
}

// CurrentPage mengembalikan halaman aktif (1-based).
func (s *Store) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage
}

// visibleLocked menjalankan filter -> sort; caller harus memegang lock.
func (s *Store) visibleLocked() []models.Task {
	filtered := FilterTasks(s.tasks.Tasks, s.searchQuery, s.filterStatus)
	return SortTasks(filtered, s.sortField, s.sortOrder)
}

// VisibleTasks mengembalikan halaman aktif setelah seluruh pipeline
// filter -> sort -> paginate dijalankan.
func (s *Store) VisibleTasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Paginate(s.visibleLocked(), s.currentPage)
}
