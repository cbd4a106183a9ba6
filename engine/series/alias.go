package series

import "dario.cat/mergo"

// MergeFieldAliases combines the alias maps discovered at different stages
// of pivot cleaning into one. Explicit aliases override category-derived
// ones, which override legend-derived ones. Pure: none of the inputs is
// mutated.
func MergeFieldAliases(explicit, category, legend map[string]string) map[string]string {
	merged := make(map[string]string, len(explicit)+len(category)+len(legend))
	for _, layer := range []map[string]string{legend, category, explicit} {
		if err := mergo.Merge(&merged, layer, mergo.WithOverride); err != nil {
			// Flat string maps cannot fail to merge; copy directly if they do.
			for key, value := range layer {
				merged[key] = value
			}
		}
	}
	return merged
}
