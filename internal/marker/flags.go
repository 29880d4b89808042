package marker

import "strings"

// FlagNames lists the options a "// @name" comment may set: compiler
// options first, then the options that only steer the analyzer's output.
// Any other "// @word" line, such as "// @ts-expect-error" or "// @log: x",
// is ordinary source.
var FlagNames = []string{
	// compiler
	"allowArbitraryExtensions", "allowImportingTsExtensions", "allowJs",
	"allowSyntheticDefaultImports", "allowUmdGlobalAccess", "allowUnreachableCode",
	"allowUnusedLabels", "alwaysStrict", "baseUrl", "checkJs", "composite",
	"customConditions", "declaration", "declarationDir", "declarationMap",
	"downlevelIteration", "emitDeclarationOnly", "emitDecoratorMetadata",
	"erasableSyntaxOnly", "esModuleInterop", "exactOptionalPropertyTypes",
	"experimentalDecorators", "forceConsistentCasingInFileNames", "importHelpers",
	"importsNotUsedAsValues", "incremental", "inlineSourceMap", "inlineSources",
	"isolatedDeclarations", "isolatedModules", "jsx", "jsxFactory",
	"jsxFragmentFactory", "jsxImportSource", "keyofStringsOnly", "lib", "module",
	"moduleDetection", "moduleResolution", "noEmit", "noFallthroughCasesInSwitch",
	"noImplicitAny", "noImplicitOverride", "noImplicitReturns", "noImplicitThis",
	"noImplicitUseStrict", "noLib", "noPropertyAccessFromIndexSignature",
	"noStrictGenericChecks", "noUncheckedIndexedAccess", "noUnusedLocals",
	"noUnusedParameters", "outDir", "outFile", "paths", "preserveConstEnums",
	"preserveValueImports", "removeComments", "resolveJsonModule",
	"resolvePackageJsonExports", "resolvePackageJsonImports",
	"rewriteRelativeImportExtensions", "rootDir", "skipLibCheck", "sourceMap",
	"strict", "strictBindCallApply", "strictBuiltinIteratorReturn",
	"strictFunctionTypes", "strictNullChecks", "strictPropertyInitialization",
	"stripInternal", "suppressImplicitAnyIndexErrors", "target", "types",
	"useDefineForClassFields", "useUnknownInCatchVariables", "verbatimModuleSyntax",

	// output
	"disableAutomaticTypeAcquisition", "emit", "errors", "keepNotations",
	"noErrorTruncation", "noErrorValidation", "noErrors", "noErrorsCutted",
	"noStaticSemanticInfo", "showEmit", "showEmittedFile",
}

var flagIndex = indexFlags(FlagNames)

// flagKey folds case and dashes, so "no-errors" and "NoErrors" meet "noErrors".
func flagKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", ""))
}

func indexFlags(names []string) map[string]string {
	idx := make(map[string]string, len(names))
	for _, n := range names {
		idx[flagKey(n)] = n
	}
	return idx
}

// CanonicalFlag returns the table spelling of name, false when name is not
// a known option.
func CanonicalFlag(name string) (string, bool) {
	canon, ok := flagIndex[flagKey(name)]
	return canon, ok
}
