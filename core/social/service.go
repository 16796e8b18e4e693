package social

type (
	// Repository persists the per-user social graphs wholesale.
	Repository interface {
		GetSocial() (map[string]Graph, error)
		SetSocial(map[string]Graph) error
	}

	Service struct {
		repo Repository
	}
)

// NewService returns the social toggles service. Toggles are synchronous;
// the UI treats them as instant state flips.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) ToggleFollow(currentID, targetID string) (bool, error) {
	return svc.toggleSet(currentID, targetID, func(g *Graph) *[]string { return &g.Following })
}

func (svc *Service) IsFollowing(currentID, targetID string) (bool, error) {
	return svc.inSet(currentID, targetID, func(g Graph) []string { return g.Following })
}

func (svc *Service) ToggleFavorite(currentID, targetID string) (bool, error) {
	return svc.toggleSet(currentID, targetID, func(g *Graph) *[]string { return &g.Favorites })
}

func (svc *Service) IsFavorite(currentID, targetID string) (bool, error) {
	return svc.inSet(currentID, targetID, func(g Graph) []string { return g.Favorites })
}

func (svc *Service) ToggleBlock(currentID, targetID string) (bool, error) {
	return svc.toggleSet(currentID, targetID, func(g *Graph) *[]string { return &g.Blocked })
}

func (svc *Service) IsBlocked(currentID, targetID string) (bool, error) {
	return svc.inSet(currentID, targetID, func(g Graph) []string { return g.Blocked })
}

// Graph returns the caller's social record, zero-valued if none exists yet.
func (svc *Service) Graph(userID string) (Graph, error) {
	graphs, err := svc.repo.GetSocial()
	if err != nil {
		return Graph{}, err
	}
	return graphs[userID], nil
}

func (svc *Service) toggleSet(currentID, targetID string, set func(*Graph) *[]string) (bool, error) {
	graphs, err := svc.repo.GetSocial()
	if err != nil {
		return false, err
	}
	graph := graphs[currentID] // lazy init: zero value is an empty record
	ids := set(&graph)
	var added bool
	*ids, added = toggle(*ids, targetID)
	graphs[currentID] = graph
	if err := svc.repo.SetSocial(graphs); err != nil {
		return false, err
	}
	return added, nil
}

func (svc *Service) inSet(currentID, targetID string, set func(Graph) []string) (bool, error) {
	graphs, err := svc.repo.GetSocial()
	if err != nil {
		return false, err
	}
	return contains(set(graphs[currentID]), targetID), nil
}
