package social

// Graph holds one user's social sets. The three sets are independent
// toggles; no symmetry is enforced between users.
type Graph struct {
	Following []string `json:"following"`
	Favorites []string `json:"favorites"`
	Blocked   []string `json:"blocked"`
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// toggle removes id if present, appends it otherwise, and reports the new
// membership state.
func toggle(ids []string, id string) ([]string, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), false
		}
	}
	return append(ids, id), true
}
