package schema

// EnrichedFileResult adds presentation data to a FileDebtScore.
type EnrichedFileResult struct {
	FileDebtScore `yaml:",inline"`
	Rank          int    `json:"rank" yaml:"rank"`
	FileName      string `json:"fileName" yaml:"fileName"`
	Band          string `json:"band" yaml:"band"`
}

// EnrichedFolderResult adds summary data to a DirectoryGroup.
type EnrichedFolderResult struct {
	Dir          string                  `json:"dir" yaml:"dir"`
	FileCount    int                     `json:"fileCount" yaml:"fileCount"`
	CriticalHits int                     `json:"criticalCount" yaml:"criticalCount"`
	AvgScore     float64                 `json:"avgScore" yaml:"avgScore"`
	MaxScore     float64                 `json:"maxScore" yaml:"maxScore"`
	Files        []FileDebtScoreWithName `json:"files" yaml:"files"`
}

// EnrichFiles adds rank, display name and score band to a list of files.
func EnrichFiles(files []FileDebtScore) []EnrichedFileResult {
	output := make([]EnrichedFileResult, len(files))
	for i, f := range files {
		output[i] = EnrichedFileResult{
			Rank:          i + 1,
			FileName:      BaseName(f.File),
			Band:          ScoreBand(f.Score),
			FileDebtScore: f,
		}
	}
	return output
}

// EnrichFolders summarizes each directory group.
func EnrichFolders(groups []DirectoryGroup) []EnrichedFolderResult {
	output := make([]EnrichedFolderResult, len(groups))
	for i, g := range groups {
		r := EnrichedFolderResult{Dir: g.Dir, FileCount: len(g.Files), Files: g.Files}
		var total float64
		for _, f := range g.Files {
			total += f.Score
			if f.Score > r.MaxScore {
				r.MaxScore = f.Score
			}
			if f.Status == StatusCritical {
				r.CriticalHits++
			}
		}
		if len(g.Files) > 0 {
			r.AvgScore = total / float64(len(g.Files))
		}
		output[i] = r
	}
	return output
}
