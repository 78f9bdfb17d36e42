package game

import (
	"starline-salvage/internal/session"
	"starline-salvage/internal/world"
)

// Project derives the client view of s. nearby is the result of a scan
// resolved in the same request and is nil otherwise.
func Project(s *session.Session, nearby []NearbyAnomaly) View {
	v := View{
		ID:          s.ID,
		Turn:        s.Turn,
		X:           s.X,
		Y:           s.Y,
		Fuel:        s.Fuel,
		Hull:        s.Hull,
		Credits:     s.Credits,
		Status:      s.Status,
		Log:         s.RecentLog(RecentLogEntries),
		MapSize:     world.MapSize,
		GoalCredits: session.GoalCredits,
		Nearby:      nearby,
	}
	if v.Nearby == nil {
		v.Nearby = []NearbyAnomaly{}
	}

	if st, ok := s.StationHere(); ok {
		v.Station = &StationView{ID: st.ID, Name: st.Name, Offers: world.Offers()}
	}
	if s.PendingEvent != nil {
		ev := *s.PendingEvent
		v.PendingEvent = &ev
	}
	return v
}
