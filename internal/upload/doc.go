// Package upload validates documents picked by the user and submits them
// to the archive as multipart/form-data while reporting progress.
//
// Only one upload runs at a time. Observers register with
// Service.SetUpdateCallback and receive snapshots of the task on the
// service goroutine; UI code must hop to the main thread itself.
package upload
