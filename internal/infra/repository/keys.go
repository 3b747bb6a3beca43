package repository

import "strings"

const defaultKeyPrefix = "schedule"

type keyspace struct {
	prefix string
}

func newKeyspace(prefix string) keyspace {
	prefix = strings.TrimSuffix(prefix, ":")
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return keyspace{prefix: prefix}
}

func (k keyspace) task(id string) string {
	return k.prefix + ":task:" + id
}

func (k keyspace) day(day string) string {
	return k.prefix + ":day:" + day
}

func (k keyspace) inbox() string {
	return k.prefix + ":inbox"
}

func (k keyspace) settings() string {
	return k.prefix + ":settings"
}

func (k keyspace) project(id string) string {
	return k.prefix + ":project:" + id
}

func (k keyspace) projects() string {
	return k.prefix + ":projects"
}

func (k keyspace) projectTasks(id string) string {
	return k.prefix + ":project:" + id + ":tasks"
}
