package platform

// Package platform contains OS-specific helpers: directories, opening files
// with the system, probing device capabilities and guessing the input modality.
