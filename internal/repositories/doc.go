// Package repositories keeps external version catalogs mirrored on disk.
//
// Each configured source URL maps to one mirror directory under the
// external versions root, named after the URL's last path segment without
// ".git". Manager.Sync clones missing mirrors, refreshes existing ones and
// then deletes every mirror directory that no longer corresponds to a
// configured source, so the set of mirrors always equals the configured set
// after a successful sync.
//
// Mirroring itself goes through the Mirror interface; GitMirror implements
// it by running the git executable.
package repositories
