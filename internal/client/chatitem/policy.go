package chatitem

import (
	"strings"

	"discord-backend/internal/app/member"
)

// Branch is the visual state a message renders in. Exactly one applies.
type Branch int

const (
	BranchText Branch = iota
	BranchImage
	BranchFile
	BranchDeleted
)

func (b Branch) String() string {
	switch b {
	case BranchText:
		return "text"
	case BranchImage:
		return "image"
	case BranchFile:
		return "file"
	case BranchDeleted:
		return "deleted"
	}
	return "unknown"
}

// Classify looks only at the text after the last dot of fileURL. "pdf" is a
// file link, anything else non-empty renders as an image.
func Classify(fileURL string) Branch {
	if fileURL == "" {
		return BranchText
	}
	ext := fileURL[strings.LastIndex(fileURL, ".")+1:]
	if ext == "pdf" {
		return BranchFile
	}
	return BranchImage
}

type Visibility struct {
	ShowEdit   bool
	ShowDelete bool
}

// Policy mirrors the backend rules so the controls only appear when the
// request would be accepted. It grants nothing by itself.
func Policy(p Props) Visibility {
	if p.Deleted {
		return Visibility{}
	}
	owner := p.CurrentMember.ID == p.Member.ID
	return Visibility{
		ShowDelete: owner || p.CurrentMember.Role.CanModerate(),
		ShowEdit:   owner && p.FileURL == "",
	}
}

func branchOf(p Props) Branch {
	if p.Deleted {
		return BranchDeleted
	}
	return Classify(p.FileURL)
}

// RoleBadge is the icon shown next to an author name.
type RoleBadge struct {
	Icon  string
	Color string
}

// roleBadges must hold an entry for every member.AllRoles value. A nil entry means no badge.
var roleBadges = map[member.Role]*RoleBadge{
	member.RoleGuest:     nil,
	member.RoleModerator: {Icon: "shield-check", Color: "indigo"},
	member.RoleAdmin:     {Icon: "shield-alert", Color: "rose"},
}

// BadgeFor returns nil for roles without a badge, unknown roles included.
func BadgeFor(role member.Role) *RoleBadge {
	b := roleBadges[role]
	if b == nil {
		return nil
	}
	badge := *b
	return &badge
}
