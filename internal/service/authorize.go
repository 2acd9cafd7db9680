package service

// Authorize reports whether an identity holding identityScope may
// perform an operation that requires requiredScope. Access is granted
// when the two sets intersect; an empty requiredScope means the
// operation is open to any authenticated identity.
func Authorize(identityScope []string, requiredScope []string) bool {
	if len(requiredScope) == 0 {
		return true
	}

	held := make(map[string]struct{}, len(identityScope))
	for _, s := range identityScope {
		held[s] = struct{}{}
	}

	for _, s := range requiredScope {
		if _, ok := held[s]; ok {
			return true
		}
	}

	return false
}
