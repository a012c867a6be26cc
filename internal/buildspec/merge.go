package buildspec

import "maps"

// Merge combines two specs without modifying either.
//
// For every phase present in either spec the result holds the base commands
// followed by the overlay commands. Phases found on one side only pass
// through unchanged. Env maps are unioned with the overlay winning on key
// conflicts, and the overlay version wins when set.
func Merge(base, overlay *Spec) *Spec {
	out := base.Clone()
	if out == nil {
		out = New()
	}
	if overlay == nil {
		return out
	}

	if overlay.Version != "" {
		out.Version = overlay.Version
	}
	if out.Version == "" {
		out.Version = DefaultVersion
	}

	for name, p := range overlay.Phases {
		out.WithCommands(name, p.Commands...)
	}

	if !overlay.Env.IsEmpty() {
		out.ensureEnv()
		out.Env.Variables = mergeMaps(out.Env.Variables, overlay.Env.Variables)
		out.Env.SecretsManager = mergeMaps(out.Env.SecretsManager, overlay.Env.SecretsManager)
	}

	return out
}

func mergeMaps(base, overlay map[string]string) map[string]string {
	if len(overlay) == 0 {
		return base
	}
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]string, len(overlay))
	}
	maps.Copy(out, overlay)
	return out
}
