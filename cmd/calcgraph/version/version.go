package version

/*
	Values injected by 'ldflags' -- these vars will be the "unknown" value
	unless the build supplies real ones, e.g.:

		go build -ldflags "-X go.polydawn.net/calcgraph/cmd/calcgraph/version.GitCommit=$(git rev-parse HEAD)"
*/
var (
	GitCommit     string = "!!unknown!!"
	GitDirty      string = "!!unknown!!"
	GitCommitDate string = "!!unknown!!"
)
