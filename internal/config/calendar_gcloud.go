//go:build gcloud

package config

// Cloud Run falls back to the runtime service account.
const requiresExplicitCredentials = false
