package media

// DiaryFilters narrows the diary list. Nil fields mean "no constraint";
// the struct is pure data with no behavior beyond Matches.
type DiaryFilters struct {
	MediaType      *Type
	Rating         *float64
	DiaryYear      *int
	ReleasedDecade *int
	ReleasedYear   *int
	LoggedBefore   *bool
	Genre          *string
}

// BookmarkFilters narrows the bookmark list.
type BookmarkFilters struct {
	MediaType      *Type
	AddedYear      *int
	ReleasedDecade *int
	ReleasedYear   *int
	Genre          *string
}

// Matches reports whether the entry satisfies every set constraint.
func (f DiaryFilters) Matches(e DiaryEntry) bool {
	if f.MediaType != nil && e.Type != *f.MediaType {
		return false
	}
	if f.Rating != nil && e.Rating != *f.Rating {
		return false
	}
	if f.DiaryYear != nil && e.DiaryYear() != *f.DiaryYear {
		return false
	}
	if f.ReleasedYear != nil && e.ReleasedYear() != *f.ReleasedYear {
		return false
	}
	if f.ReleasedDecade != nil && (e.ReleasedYear()/10)*10 != *f.ReleasedDecade {
		return false
	}
	if f.LoggedBefore != nil && e.LoggedBefore != *f.LoggedBefore {
		return false
	}
	if f.Genre != nil && e.Genre != *f.Genre {
		return false
	}
	return true
}
