package service

import (
	"Streamify/pkg/pipeline"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPipelinesExcludePrivateVideos(t *testing.T) {
	pg := pipeline.DefaultPagination()
	cases := map[string]struct {
		p     *pipeline.Pipeline
		cols  []string
		count int
	}{
		"liked videos":    {LikedVideosPipeline(ownerID, pg), []string{"`v`.`visibility` <> ?"}, 1},
		"playlist videos": {PlaylistVideosPipeline(playlistID, pg), []string{"`v`.`visibility` <> ?"}, 1},
		"watch history":   {WatchHistoryPipeline(ownerID, pg), []string{"`v`.`visibility` <> ?"}, 1},
		"playlist header": {PlaylistDetailPipeline(playlistID), []string{"`vc`.`visibility` <> ?", "`vs`.`visibility` <> ?"}, 2},
		"user playlists":  {UserPlaylistsPipeline(ownerID, pg), []string{"`vc`.`visibility` <> ?", "`vs`.`visibility` <> ?"}, 2},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			q, err := tc.p.Compile()
			require.NoError(t, err)
			for _, col := range tc.cols {
				assert.Contains(t, q.SQL, col)
			}
			n := 0
			for _, arg := range q.Args {
				if arg == "private" {
					n++
				}
			}
			assert.Equal(t, tc.count, n)
			assert.Equal(t, tc.count, strings.Count(q.SQL, "`visibility` <> ?"))
		})
	}
}
