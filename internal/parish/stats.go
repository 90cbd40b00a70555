package parish

// Stats is the dashboard payload, also handed to the advisory
// collaborator.
type Stats struct {
	Parishioners int
	Intentions   int
	CEVs         int
	Balance      int64
}

// Stats summarizes the registry in one pass.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	var balance int64
	for _, tx := range s.state.Transactions {
		balance += tx.Signed()
	}
	return Stats{
		Parishioners: len(s.state.Parishioners),
		Intentions:   len(s.state.Intentions),
		CEVs:         len(s.state.CEVs),
		Balance:      balance,
	}
}
