// Package download saves archive papers to the local Downloads directory.
// It manages the task lifecycle, the parallelism limit and progress
// propagation to the UI.
package download
