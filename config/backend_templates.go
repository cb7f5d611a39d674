package config

// The following variables are available for use in the templates:
//
// Command   the shell command being submitted
// Options   backend flags rendered from the merged option set
// User      user whose jobs are listed
//
// See https://golang.org/pkg/text/template for more information

// The local backend runs the command directly; its options are at most a
// trailing "| tee logfile" clause.
var localSubmitTemplate = `{{.Command}} {{.Options}}`
var localJobsTemplate = `echo 0`

var lsfSubmitTemplate = `bsub {{.Options}} {{.Command}}`
var lsfJobsTemplate = `bjobs -u {{.User}}`

var slurmSubmitTemplate = `sbatch {{.Options}} {{.Command}}`
var slurmJobsTemplate = `squeue -u {{.User}}`

var condorSubmitTemplate = `csub {{.Options}} {{.Command}}`
var condorJobsTemplate = `condor_q -u {{.User}}`
