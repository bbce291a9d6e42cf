// Package avatar renders a circular profile picture from a photo and one or
// two flags.
//
// A Renderer holds the three input layers and four settings and produces
// two derived layers, cached in a LayerCache:
//
//   - foreground: the profile photo cropped to an ellipse (depends on pfp, radius)
//   - background: the flags warped, split and cropped (depends on leftFlag,
//     rightFlag, warpStrength, isCropped, angle)
//
// Inputs are identified by the Tag enumeration. External names are turned
// into tags with ParseTag, which is the only place ErrUnknownTag comes from.
package avatar
