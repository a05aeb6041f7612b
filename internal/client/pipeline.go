package client

import (
	"sort"
	"strings"

	"taskify/internal/models"
)

// Pipeline query untuk tampilan daftar task: filter -> sort -> paginate.
// Ketiganya fungsi murni atas snapshot daftar task; output satu tahap
// menjadi input tahap berikutnya.

type SortField string

const (
	SortNone    SortField = ""
	SortName    SortField = "name"
	SortStatus  SortField = "status"
	SortDueDate SortField = "dueDate"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// PageSize adalah jumlah task per halaman.
const PageSize = 10

// StatusAll mematikan filter status.
const StatusAll = "all"

// FilterTasks menyaring berdasarkan substring nama (case-insensitive)
// DAN status. Status "all" berarti semua status lolos.
func FilterTasks(tasks []models.Task, search, status string) []models.Task {
	query := strings.ToLower(search)
	out := []models.Task{}
	for _, task := range tasks {
		matchesSearch := strings.Contains(strings.ToLower(task.Name), query)
		matchesStatus := status == StatusAll || task.Status == status
		if matchesSearch && matchesStatus {
			out = append(out, task)
		}
	}
	return out
}

// SortTasks mengurutkan salinan tasks berdasarkan field yang dipilih.
// Tanpa sort field, urutan asli dipertahankan. Task dengan kunci sama
// tetap pada urutan relatifnya (stable).
func SortTasks(tasks []models.Task, field SortField, order SortOrder) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	if field == SortNone {
		return out
	}

	less := func(a, b models.Task) bool {
		switch field {
		case SortDueDate:
			return a.DueDate.Before(b.DueDate)
		case SortStatus:
			return a.Status < b.Status
		default:
			return a.Name < b.Name
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// TotalPages menghitung jumlah halaman untuk n task.
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Paginate mengambil satu halaman (1-based) berukuran PageSize.
func Paginate(tasks []models.Task, page int) []models.Task {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(tasks) {
		return []models.Task{}
	}
	end := start + PageSize
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[start:end]
}
