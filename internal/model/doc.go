package model

// Package model defines domain data structures used across the app: archived
// papers, upload and download tasks, and their status enums. Structures are
// plain values so the terminal view-model and the UI can bind to them directly.
