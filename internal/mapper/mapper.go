// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"time"

	"loopedin/internal/api"
	"loopedin/internal/entities"
)

// ToAPIUser maps entities.User to transport model.
func ToAPIUser(u entities.User) api.User {
	return api.User{
		ID:          u.ID,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		GivenName:   u.GivenName,
		FamilyName:  u.FamilyName,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
	}
}

// ToAPILoop maps entities.Loop to transport model.
func ToAPILoop(l entities.Loop) api.Loop {
	reminders := make([]api.Reminder, 0, len(l.Reminders))
	for _, r := range l.Reminders {
		reminders = append(reminders, api.Reminder{Weekday: int(r.Weekday), TimeOfDay: r.TimeOfDay})
	}
	vibes := l.Vibes
	if vibes == nil {
		vibes = []string{}
	}
	return api.Loop{
		ID:        l.ID,
		Name:      l.Name,
		Cadence:   string(l.Cadence),
		Vibes:     vibes,
		Context:   l.Context,
		CreatorID: l.CreatorID,
		Reminders: reminders,
		CreatedAt: l.CreatedAt,
	}
}

// ToAPILoopList maps a loop slice.
func ToAPILoopList(loops []entities.Loop) []api.Loop {
	out := make([]api.Loop, 0, len(loops))
	for _, l := range loops {
		out = append(out, ToAPILoop(l))
	}
	return out
}

// FromAPICreateLoop builds an entities.Loop from the create request.
func FromAPICreateLoop(src api.CreateLoopRequest, creatorID int64) entities.Loop {
	reminders := make([]entities.Reminder, 0, len(src.Reminders))
	for _, r := range src.Reminders {
		reminders = append(reminders, entities.Reminder{
			Weekday:   time.Weekday(r.Weekday),
			TimeOfDay: r.TimeOfDay,
		})
	}
	return entities.Loop{
		Name:      src.Name,
		Cadence:   entities.Cadence(src.Cadence),
		Vibes:     src.Vibes,
		Context:   src.Context,
		CreatorID: creatorID,
		Reminders: reminders,
	}
}

// ToAPIMember maps entities.Member to transport model.
func ToAPIMember(m entities.Member) api.Member {
	return api.Member{User: ToAPIUser(m.User), Context: m.MemberContext}
}

// ToAPIMemberList maps a member slice.
func ToAPIMemberList(members []entities.Member) []api.Member {
	out := make([]api.Member, 0, len(members))
	for _, m := range members {
		out = append(out, ToAPIMember(m))
	}
	return out
}

// ToAPIUpdate maps entities.Update to transport model.
func ToAPIUpdate(u entities.Update) api.Update {
	media := u.MediaURLs
	if media == nil {
		media = []string{}
	}
	return api.Update{
		ID:         u.ID,
		LoopID:     u.LoopID,
		AuthorID:   u.UserID,
		AuthorName: u.AuthorName,
		Content:    u.Content,
		MediaURLs:  media,
		CreatedAt:  u.CreatedAt,
	}
}

// ToAPIUpdateList maps an update slice.
func ToAPIUpdateList(updates []entities.Update) []api.Update {
	out := make([]api.Update, 0, len(updates))
	for _, u := range updates {
		out = append(out, ToAPIUpdate(u))
	}
	return out
}

// ToAPINewsletter maps entities.Newsletter to transport model.
func ToAPINewsletter(n entities.Newsletter) api.Newsletter {
	return api.Newsletter{
		ID:        n.ID,
		LoopID:    n.LoopID,
		Slug:      n.Slug,
		Content:   n.Content,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		SentAt:    n.SentAt,
	}
}

// ToAPINewsletterList maps a newsletter slice.
func ToAPINewsletterList(newsletters []entities.Newsletter) []api.Newsletter {
	out := make([]api.Newsletter, 0, len(newsletters))
	for _, n := range newsletters {
		out = append(out, ToAPINewsletter(n))
	}
	return out
}

// ToAPIStats maps entities.Stats to transport model.
func ToAPIStats(s entities.Stats) api.Stats {
	return api.Stats{
		Users:            s.Users,
		Loops:            s.Loops,
		Updates:          s.Updates,
		Newsletters:      s.Newsletters,
		SentNewsletters:  s.SentNewsletters,
		DraftNewsletters: s.DraftNewsletters,
	}
}

// ToAPILoopStats maps entities.LoopStats to transport model.
func ToAPILoopStats(s entities.LoopStats) api.LoopStats {
	return api.LoopStats{
		LoopID:      s.LoopID,
		LoopName:    s.LoopName,
		Members:     s.Members,
		Updates:     s.Updates,
		Newsletters: s.Newsletters,
	}
}
