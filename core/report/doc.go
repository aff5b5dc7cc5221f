// Package report persists reconciliation outcomes as flat files.
//
// Three kinds of files are written into the output directory:
//   - <details_prefix><bucket>: JSON object of the disagreeing keys of one bucket,
//     rewritten whenever that bucket mismatches.
//   - <details_file>: one mismatching bucket name per line, appended on every run.
//   - <status_file>: "1" once any run found a mismatch. A clean run creates "0" only when
//     the file does not exist; a recorded "1" stays until ResetStatus is called.
package report
