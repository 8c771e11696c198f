package quest

// Fixed achievement milestones. The third milestone is "all quests", which
// is a moving target as the dataset changes, so it is recomputed from the
// current total at every check rather than cached.
const (
	MilestoneFirstQuest = 1
	MilestoneFiveQuests = 5
)

// checkAchievementsLocked compares the completed-quest count against the
// count before the current mutation. Crossing one or more milestones in a
// single mutation sets the badge once: the signal means "something new
// unlocked", not a queue of distinct events. Must be called with the write
// lock held; returns whether to notify and a snapshot of the subscribers.
func (s *Store) checkAchievementsLocked() (bool, []func()) {
	completed := s.completedCountLocked()
	previous := s.lastCompleted
	s.lastCompleted = completed

	milestones := [...]int{MilestoneFirstQuest, MilestoneFiveQuests, s.totalCountLocked()}
	for _, m := range milestones {
		if completed >= m && previous < m {
			s.badgePending = true
			subs := make([]func(), len(s.subscribers))
			copy(subs, s.subscribers)
			return true, subs
		}
	}

	return false, nil
}

func notifyAll(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}

// HasNewAchievement reports whether a milestone was crossed since the last
// acknowledgement. The flag is sticky across further mutations until
// AcknowledgeAchievements clears it.
func (s *Store) HasNewAchievement() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.badgePending
}

// AcknowledgeAchievements clears the pending badge. Called when the player
// views the achievement surface.
func (s *Store) AcknowledgeAchievements() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.badgePending = false
}

// OnAchievementUnlocked registers a callback fired synchronously after any
// mutation that crosses a milestone. Registrations accumulate; earlier
// subscribers are never replaced.
func (s *Store) OnAchievementUnlocked(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, fn)
}

// FirstQuestAchieved reports whether at least one quest is completed.
func (s *Store) FirstQuestAchieved() bool {
	return s.CompletedQuestCount() >= MilestoneFirstQuest
}

// FiveQuestsAchieved reports whether at least five quests are completed.
func (s *Store) FiveQuestsAchieved() bool {
	return s.CompletedQuestCount() >= MilestoneFiveQuests
}

// AllQuestsAchieved reports whether every quest in the dataset is completed.
func (s *Store) AllQuestsAchieved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := s.totalCountLocked()
	return total > 0 && s.completedCountLocked() >= total
}
