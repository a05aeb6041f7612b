package repository

import (
	"context"
	"errors"
	"time"

	"taskify/internal/models"
	"taskify/internal/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertTask menyimpan task baru milik task.UserID. Aturan field
// diperiksa ulang di sini sebagai penjaga terakhir sebelum data masuk
// ke store, memakai aturan yang sama dengan lapisan HTTP.
func InsertTask(ctx context.Context, db *mongo.Database, task *models.Task) error {
	if err := validation.ValidateTask(task.Name, task.Description, task.Status, task.DueDate); err != nil {
		return err
	}

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	res, err := db.Collection(TaskCollection).InsertOne(ctx, task)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = id
	}

	// Simpan back-reference di dokumen user
	_, err = db.Collection(UserCollection).UpdateByID(ctx, task.UserID, bson.M{
		"$push": bson.M{"tasks": task.ID},
	})
	return err
}

// TasksByOwner mengembalikan semua task milik owner, tanpa filter dan
// tanpa urutan tertentu. Filter, sort, dan paginasi adalah urusan client.
func TasksByOwner(ctx context.Context, db *mongo.Database, owner primitive.ObjectID) ([]models.Task, error) {
	cursor, err := db.Collection(TaskCollection).Find(ctx, bson.M{"user": owner})
	if err != nil {
		return nil, err
	}
	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TaskByID mencari task berdasarkan id DAN owner sekaligus. Task milik
// user lain tidak bisa dibedakan dari task yang tidak ada.
func TaskByID(ctx context.Context, db *mongo.Database, owner, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := db.Collection(TaskCollection).FindOne(ctx, bson.M{"_id": id, "user": owner}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// UpdateTask menerapkan partial update dalam satu operasi
// find-and-modify yang difilter id+owner, sehingga pengecekan ownership
// dan penulisan terjadi atomik tanpa read-then-write.
func UpdateTask(ctx context.Context, db *mongo.Database, owner, id primitive.ObjectID, set bson.M) (*models.Task, error) {
	if due, ok := set["due_date"].(time.Time); ok {
		if err := validation.ValidateDueDate(due); err != nil {
			return nil, err
		}
	}
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task models.Task
	err := db.Collection(TaskCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user": owner},
		bson.M{"$set": set},
		opts,
	).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &task, nil
}

// DeleteTask menghapus task dalam satu operasi yang difilter id+owner.
func DeleteTask(ctx context.Context, db *mongo.Database, owner, id primitive.ObjectID) error {
	var task models.Task
	err := db.Collection(TaskCollection).FindOneAndDelete(ctx, bson.M{"_id": id, "user": owner}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	// Bersihkan back-reference di dokumen user
	_, err = db.Collection(UserCollection).UpdateByID(ctx, owner, bson.M{
		"$pull": bson.M{"tasks": id},
	})
	return err
}
