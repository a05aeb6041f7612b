package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taskify/internal/config"
	"taskify/internal/models"
	"taskify/internal/repository"
	"taskify/internal/validation"
	"taskify/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Task handlers
//
// Semua operasi di sini diskope ke owner yang diambil dari session
// (locals "userID"), tidak pernah dari input caller.

func sessionUserID(c *fiber.Ctx) (primitive.ObjectID, error) {
	idHex, _ := c.Locals("userID").(string)
	return primitive.ObjectIDFromHex(idHex)
}

func taskCacheKey(id primitive.ObjectID) string {
	return fmt.Sprintf("task:%s", id.Hex())
}

// CreateTask membuat task baru milik user yang sedang login
func CreateTask(c *fiber.Ctx) error {
	ownerID, err := sessionUserID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid token.",
		})
	}

	// struct TaskRequest menerima inputan dari user
	type TaskRequest struct {
		Name        string    `json:"name" validate:"required,min=3,max=50"`
		Description string    `json:"description" validate:"required,min=5,max=200"`
		Status      string    `json:"status" validate:"omitempty,oneof=pending ongoing completed"`
		DueDate     time.Time `json:"dueDate" validate:"required"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Bad request",
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}

	// Aturan due date dibagi dengan lapisan repository
	if err := validation.ValidateDueDate(req.DueDate); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	// Status default pending jika tidak dikirim
	if req.Status == "" {
		req.Status = validation.StatusPending
	}

	task := &models.Task{
		UserID:      ownerID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}
	if err := repository.InsertTask(c.Context(), config.DB, task); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			logger.AuditLogger.Warn("Duplicate task name",
				zap.String("name", req.Name),
				zap.String("user_id", ownerID.Hex()),
			)
			return c.Status(409).JSON(fiber.Map{
				"success": false,
				"message": "Task name already exists",
			})
		}
		if validation.IsValidationError(err) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error creating task",
		})
	}

	logger.AuditLogger.Info("Task created successfully", zap.String("task_id", task.ID.Hex()))
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Task created successfully",
		"data":    task,
	})
}

// ListTasks mengambil semua task milik user yang sedang login.
// Hasilnya sengaja tidak difilter dan tidak diurutkan; itu urusan client.
func ListTasks(c *fiber.Ctx) error {
	ownerID, err := sessionUserID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid token.",
		})
	}

	tasks, err := repository.TasksByOwner(c.Context(), config.DB, ownerID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching tasks",
		})
	}

	logger.AuditLogger.Info("Tasks fetched successfully", zap.String("user_id", ownerID.Hex()))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tasks retrieved successfully",
		"data":    tasks,
	})
}

// GetTask mengambil satu task berdasarkan ID, dengan cache Redis
func GetTask(c *fiber.Ctx) error {
	ownerID, err := sessionUserID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid token.",
		})
	}

	taskID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid task ID",
		})
	}

	// Coba ambil dari cache Redis dulu
	cacheKey := taskCacheKey(taskID)
	if cached, err := config.RedisClient.Get(config.Ctx, cacheKey).Result(); err == nil {
		var task models.Task
		if err = json.Unmarshal([]byte(cached), &task); err == nil {
			// Task milik user lain diperlakukan sama dengan task
			// yang tidak ada
			if task.UserID != ownerID {
				return c.Status(404).JSON(fiber.Map{
					"success": false,
					"message": "Task not found",
				})
			}
			logger.AuditLogger.Info("Task found (from cache)", zap.String("task_id", taskID.Hex()))
			return c.JSON(fiber.Map{
				"success": true,
				"message": "Task found (from cache)",
				"data":    task,
			})
		}
	}

	task, err := repository.TaskByID(c.Context(), config.DB, ownerID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Task not found",
			})
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching task",
		})
	}

	// Simpan ke cache selama 1 jam
	if taskJSON, err := json.Marshal(task); err == nil {
		config.RedisClient.SetEX(config.Ctx, cacheKey, taskJSON, time.Hour)
	}

	logger.AuditLogger.Info("Task found", zap.String("task_id", taskID.Hex()))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Task found",
		"data":    task,
	})
}

// UpdateTask menerapkan partial update pada task milik user yang login
func UpdateTask(c *fiber.Ctx) error {
	ownerID, err := sessionUserID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid token.",
		})
	}

	taskID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid task ID",
		})
	}

	// pointer (*) untuk menandakan bahwa field bisa kosong
	type UpdateTaskRequest struct {
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		DueDate     *time.Time `json:"dueDate"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Bad request",
		})
	}

	if req.Status != nil && !validation.ValidStatus(*req.Status) {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid status",
		})
	}

	// Susun $set hanya dari field yang dikirim
	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.DueDate != nil {
		set["due_date"] = *req.DueDate
	}

	task, err := repository.UpdateTask(c.Context(), config.DB, ownerID, taskID, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Task not found",
			})
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(409).JSON(fiber.Map{
				"success": false,
				"message": "Task name already exists",
			})
		}
		if validation.IsValidationError(err) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error updating task",
		})
	}

	// Perbarui cache Redis untuk task ini
	cacheKey := taskCacheKey(taskID)
	config.RedisClient.Del(config.Ctx, cacheKey)
	if taskJSON, err := json.Marshal(task); err == nil {
		config.RedisClient.SetEX(config.Ctx, cacheKey, taskJSON, time.Hour)
	}

	logger.AuditLogger.Info("Task updated", zap.String("task_id", taskID.Hex()))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Task updated successfully",
		"data":    task,
	})
}

// DeleteTask menghapus task milik user yang login
func DeleteTask(c *fiber.Ctx) error {
	ownerID, err := sessionUserID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid token.",
		})
	}

	taskID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid task ID",
		})
	}

	if err := repository.DeleteTask(c.Context(), config.DB, ownerID, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Task not found",
			})
		}
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error deleting task",
		})
	}

	// Hapus cache Redis untuk task ini
	config.RedisClient.Del(config.Ctx, taskCacheKey(taskID))

	logger.AuditLogger.Info("Task deleted", zap.String("task_id", taskID.Hex()))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Task deleted successfully",
	})
}
