package client

import (
	"fmt"
	"testing"
	"time"

	"taskify/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makeTask(name, status string, due time.Time) models.Task {
	return models.Task{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Status:  status,
		DueDate: due,
	}
}

func taskNames(tasks []models.Task) []string {
	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.Name
	}
	return names
}

func TestFilterTasksStatusAllIsIdentity(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		makeTask("Alpha", "pending", now),
		makeTask("Beta", "ongoing", now),
		makeTask("Gamma", "completed", now),
	}

	got := FilterTasks(tasks, "", StatusAll)
	assert.Equal(t, taskNames(tasks), taskNames(got))
}

func TestFilterTasksSearchIsCaseInsensitive(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		makeTask("Write report", "pending", now),
		makeTask("Buy groceries", "pending", now),
	}

	got := FilterTasks(tasks, "WRITE", StatusAll)
	assert.Equal(t, []string{"Write report"}, taskNames(got))

	got = FilterTasks(tasks, "port", StatusAll)
	assert.Equal(t, []string{"Write report"}, taskNames(got))
}

func TestFilterTasksCombinesSearchAndStatus(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		makeTask("Write report", "pending", now),
		makeTask("Write summary", "completed", now),
		makeTask("Buy groceries", "pending", now),
	}

	// Kedua kondisi harus terpenuhi sekaligus
	got := FilterTasks(tasks, "write", "pending")
	assert.Equal(t, []string{"Write report"}, taskNames(got))
}

func TestSortTasksByName(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		makeTask("Charlie", "pending", now),
		makeTask("Alpha", "pending", now),
		makeTask("Bravo", "pending", now),
	}

	asc := SortTasks(tasks, SortName, Ascending)
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, taskNames(asc))

	desc := SortTasks(tasks, SortName, Descending)
	assert.Equal(t, []string{"Charlie", "Bravo", "Alpha"}, taskNames(desc))

	// Input tidak boleh berubah
	assert.Equal(t, []string{"Charlie", "Alpha", "Bravo"}, taskNames(tasks))
}

func TestSortTasksByDueDateIsChronological(t *testing.T) {
	now := time.Now()
	a := makeTask("A", "pending", now.Add(24*time.Hour))
	b := makeTask("B", "pending", now.Add(48*time.Hour))
	tasks := []models.Task{b, a}

	asc := SortTasks(tasks, SortDueDate, Ascending)
	assert.Equal(t, []string{"A", "B"}, taskNames(asc))

	desc := SortTasks(tasks, SortDueDate, Descending)
	assert.Equal(t, []string{"B", "A"}, taskNames(desc))
}

func TestSortTasksIsStableForEqualKeys(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	tasks := []models.Task{
		makeTask("first", "pending", due),
		makeTask("second", "pending", due),
		makeTask("third", "pending", due),
	}

	// Semua kunci sama, urutan penyisipan harus bertahan
	got := SortTasks(tasks, SortDueDate, Ascending)
	assert.Equal(t, []string{"first", "second", "third"}, taskNames(got))

	got = SortTasks(tasks, SortStatus, Descending)
	assert.Equal(t, []string{"first", "second", "third"}, taskNames(got))
}

func TestSortTasksNoFieldPreservesOrder(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		makeTask("Zulu", "pending", now),
		makeTask("Alpha", "pending", now),
	}

	got := SortTasks(tasks, SortNone, Ascending)
	assert.Equal(t, []string{"Zulu", "Alpha"}, taskNames(got))
}

func TestPaginate(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{}
	for i := 0; i < 25; i++ {
		tasks = append(tasks, makeTask(fmt.Sprintf("task-%02d", i), "pending", now))
	}

	assert.Equal(t, 3, TotalPages(len(tasks)))
	assert.Len(t, Paginate(tasks, 1), PageSize)
	assert.Len(t, Paginate(tasks, 3), 5)
	assert.Empty(t, Paginate(tasks, 4))
	assert.Equal(t, "task-10", Paginate(tasks, 2)[0].Name)
}

func TestStorePageResetsOnSearchAndFilterButNotSort(t *testing.T) {
	store := NewStore(nil)
	now := time.Now()
	for i := 0; i < 25; i++ {
		store.tasks.Tasks = append(store.tasks.Tasks, makeTask(fmt.Sprintf("task-%02d", i), "pending", now))
	}

	store.SetPage(3)
	assert.Equal(t, 3, store.CurrentPage())

	// Sort tidak me-reset halaman
	store.ToggleSort(SortName)
	assert.Equal(t, 3, store.CurrentPage())

	// Pencarian me-reset halaman ke 1
	store.SetSearchQuery("task")
	assert.Equal(t, 1, store.CurrentPage())

	store.SetPage(2)
	store.SetFilterStatus("completed")
	assert.Equal(t, 1, store.CurrentPage())
}

func TestStoreToggleSortFlipsOrder(t *testing.T) {
	store := NewStore(nil)

	store.ToggleSort(SortDueDate)
	assert.Equal(t, SortDueDate, store.sortField)
	assert.Equal(t, Ascending, store.sortOrder)

	store.ToggleSort(SortDueDate)
	assert.Equal(t, Descending, store.sortOrder)

	// Ganti field mengembalikan arah ke ascending
	store.ToggleSort(SortName)
	assert.Equal(t, SortName, store.sortField)
	assert.Equal(t, Ascending, store.sortOrder)
}

func TestStoreSetPageIsClamped(t *testing.T) {
	store := NewStore(nil)
	now := time.Now()
	for i := 0; i < 15; i++ {
		store.tasks.Tasks = append(store.tasks.Tasks, makeTask(fmt.Sprintf("task-%02d", i), "pending", now))
	}

	store.SetPage(99)
	assert.Equal(t, 2, store.CurrentPage())

	store.SetPage(-5)
	assert.Equal(t, 1, store.CurrentPage())
}

func TestStoreVisibleTasksRunsFullPipeline(t *testing.T) {
	store := NewStore(nil)
	now := time.Now()
	store.tasks.Tasks = []models.Task{
		makeTask("B task", "pending", now.Add(48*time.Hour)),
		makeTask("A task", "pending", now.Add(24*time.Hour)),
		makeTask("Other", "completed", now),
	}

	store.SetSearchQuery("task")
	store.SetFilterStatus("pending")
	store.ToggleSort(SortDueDate)

	got := store.VisibleTasks()
	assert.Equal(t, []string{"A task", "B task"}, taskNames(got))

	store.ToggleSort(SortDueDate)
	got = store.VisibleTasks()
	assert.Equal(t, []string{"B task", "A task"}, taskNames(got))
}
