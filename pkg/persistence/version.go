package persistence

import (
	"log/slog"

	"github.com/Masterminds/semver/v3"
)

// VersionRelation describes how a save's version compares to CurrentVersion.
type VersionRelation string

const (
	VersionCurrent     VersionRelation = "current"
	VersionOlder       VersionRelation = "older"
	VersionNewer       VersionRelation = "newer"
	VersionUnparseable VersionRelation = "unparseable"
)

var current = semver.MustParse(CurrentVersion)

// CompareVersion classifies v against CurrentVersion.
// Equal versions spelled differently ("v1.0.0") count as current.
func CompareVersion(v string) VersionRelation {
	if v == CurrentVersion {
		return VersionCurrent
	}
	got, err := semver.NewVersion(v)
	if err != nil {
		return VersionUnparseable
	}
	switch got.Compare(current) {
	case -1:
		return VersionOlder
	case 1:
		return VersionNewer
	default:
		return VersionCurrent
	}
}

// warnVersion logs a mismatch. Loading always proceeds; no migration is performed.
func (g *Gateway) warnVersion(v string) {
	if v == CurrentVersion {
		return
	}
	g.logger.Warn("Save version mismatch",
		slog.String("expected", CurrentVersion),
		slog.String("got", v),
		slog.String("relation", string(CompareVersion(v))),
	)
}
