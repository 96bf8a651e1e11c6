package timeline

import "strings"

// objectTypeMap maps a host object-type suffix to a UI category label.
// Object types look like "adsk::fusion::ExtrudeFeature"; classification
// matches on the suffix only, so it survives namespace changes across host
// versions.
var objectTypeMap = map[string]string{
	// Sketches
	"Sketch": "Sketch",
	// Solid / surface features
	"ExtrudeFeature":            "Extrude",
	"RevolveFeature":            "Revolve",
	"SweepFeature":              "Sweep",
	"LoftFeature":               "Loft",
	"HoleFeature":               "Hole",
	"ThreadFeature":             "Thread",
	"FilletFeature":             "Fillet",
	"ChamferFeature":            "Chamfer",
	"ShellFeature":              "Shell",
	"ScaleFeature":              "Scale",
	"MirrorFeature":             "Mirror",
	"RectangularPatternFeature": "Pattern",
	"CircularPatternFeature":    "Pattern",
	"PathPatternFeature":        "Pattern",
	"CombineFeature":            "Combine",
	"SplitBodyFeature":          "Split",
	"SplitFaceFeature":          "Split",
	"OffsetFacesFeature":        "Offset",
	"MoveFaceFeature":           "Move",
	"MoveFeature":               "Move",
	"TrimFeature":               "Surface",
	"ExtendFeature":             "Surface",
	"PatchFeature":              "Surface",
	"StitchFeature":             "Surface",
	"ThickenFeature":            "Surface",
	"RuledSurfaceFeature":       "Surface",
	// Construction geometry
	"ConstructionPlane": "Plane",
	"ConstructionAxis":  "Axis",
	"ConstructionPoint": "Point",
	// Import / bodies
	"BaseFeature": "Body",
	"FormFeature": "Form",
	// Other
	"BoundaryFillFeature": "Fill",
	"DirectEditFeature":   "Edit",
	"DeleteFaceFeature":   "Edit",
	"ReplaceFaceFeature":  "Edit",
	"UnstitchFeature":     "Surface",
	"FromSurfaceFeature":  "Thicken",
	"SculptFeature":       "Sculpt",
}

// genericCategory is the fallback for unrecognized object types.
const genericCategory = "Feature"

// Classify maps a host object type to a short display category like
// "Sketch", "Extrude", or "Pattern". Classification is display metadata
// only; it never affects suppression logic.
func Classify(objectType string) string {
	if objectType == "" {
		return genericCategory
	}
	suffix := objectType
	if i := strings.LastIndex(objectType, "::"); i >= 0 {
		suffix = objectType[i+2:]
	}
	if category, ok := objectTypeMap[suffix]; ok {
		return category
	}
	return genericCategory
}
