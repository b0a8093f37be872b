package svgplugins

var presetDefault = NewPreset("preset-default", "the default set of plugins",
	removeDoctype,
	removeXMLProcInst,
	removeComments,
	removeMetadata,
	removeEditorsNSData,
	cleanupAttrs,
	cleanupIds,
	removeUselessDefs,
	cleanupNumericValues,
	removeUnknownsAndDefaults,
	removeNonInheritableGroupAttrs,
	removeUselessStrokeAndFill,
	cleanupEnableBackground,
	removeEmptyText,
	convertEllipseToCircle,
	moveGroupAttrsToElems,
	convertPathData,
	convertTransform,
	removeEmptyAttrs,
	removeEmptyContainers,
	mergePaths,
	sortDefsChildren,
	removeTitle,
	removeDesc,
)

// builtinPlugins returns the default preset, then every plugin
// of this package.
func builtinPlugins() []Plugin {
	out := []Plugin{presetDefault}
	out = append(out, presetDefault.Plugins()...)
	return append(out,
		removeRasterImages,
		removeScriptElement,
		removeStyleElement,
		removeXMLNS,
		removeOffCanvasPaths,
		reusePaths,
		convertStyleToAttrs,
	)
}
