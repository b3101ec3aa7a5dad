// Package unidiff reads and writes the unified diff subset used by tidydiff.
//
// A diff is a sequence of hunks with no file headers:
//
//	@@ -<srcStart>,<srcLen> +<dstStart>,<dstLen> @@
//	 <context line>
//	-<deleted line>
//	+<inserted line>
//
// Texts are split on '\n' only. A trailing newline produces a final empty
// line, which is diffed like any other line (it appears as " " or "-"/"+").
//
// Format produces diffs, Check validates diffs received from elsewhere, Fix
// rewrites headers to match their bodies and Reverse inverts a diff.
package unidiff
