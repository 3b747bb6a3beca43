//go:build !gcloud

package config

// Local runs have no ambient service account.
const requiresExplicitCredentials = true
