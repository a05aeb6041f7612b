package repository

import "errors"

var (
	// ErrNotFound dikembalikan saat dokumen tidak ada, termasuk saat
	// dokumen ada tetapi dimiliki user lain. Keduanya sengaja tidak
	// dibedakan.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate dikembalikan saat index unik dilanggar
	// (email user, atau pasangan name+user pada task).
	ErrDuplicate = errors.New("already exists")
)
