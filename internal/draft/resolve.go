package draft

import "strings"

// ResolveName maps an option id to its display name. A catalog match wins;
// otherwise the id itself is used. Either way a qualified key has its
// namespace prefix stripped. Always returns a usable string so the reducer
// never stalls on an unresolved name.
func ResolveName(optionID string, catalog []Option) string {
	for _, opt := range catalog {
		if opt.ID != optionID {
			continue
		}
		if opt.Name != "" {
			return strings.TrimPrefix(opt.Name, civPrefix)
		}
		break
	}
	return strings.TrimPrefix(optionID, civPrefix)
}
