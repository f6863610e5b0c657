package metrics

// RecordArticleSaved records a successful article save.
// Mode is "create" or "update".
func RecordArticleSaved(mode string) {
	ArticlesSavedTotal.WithLabelValues(mode).Inc()
}

// RecordFormValidationFailure records a validation failure for a form field.
// Kind is the error kind token (required, min, alpha_dash, unique, ...).
func RecordFormValidationFailure(field, kind string) {
	FormValidationFailuresTotal.WithLabelValues(field, kind).Inc()
}

// RecordImageStored records an article image written to blob storage.
func RecordImageStored() {
	ImagesStoredTotal.Inc()
}

// RecordImageDeleted records an article image removed from blob storage.
func RecordImageDeleted() {
	ImagesDeletedTotal.Inc()
}

// RecordOrphanedUploadSwept records a file reclaimed by the upload sweeper.
func RecordOrphanedUploadSwept() {
	OrphanedUploadsSweptTotal.Inc()
}

// RecordLoginAttempt records a login attempt.
// Outcome is "success", "failure" or "throttled".
func RecordLoginAttempt(outcome string) {
	LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}

// UpdateArticlesTotal updates the total count of articles in the database.
// This gauge is refreshed by the sweeper run.
func UpdateArticlesTotal(count int64) {
	ArticlesTotal.Set(float64(count))
}
