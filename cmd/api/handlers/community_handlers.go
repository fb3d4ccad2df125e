package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"veritas-ai/cmd/api/dto"
	"veritas-ai/cmd/api/middleware"
	"veritas-ai/cmd/api/services"
	"veritas-ai/logger"
	"veritas-ai/repositories"
	"veritas-ai/votes"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The stream is read-only for clients; there is nothing origin-sensitive
	// in the feed payloads, so any origin may subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GetCommunityFeedHandler godoc
// @Summary      List the community feed
// @Description  Returns the most recent community entries, newest first, with the caller's own vote marked.
// @Tags         community
// @Produce      json
// @Success      200  {object}  dto.CommunityFeedResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /community/feed [get]
func GetCommunityFeedHandler(communitySvc *services.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := communitySvc.Feed(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_load_feed"})
			return
		}
		c.JSON(http.StatusOK, dto.CommunityFeedResponseDTO{Items: entries})
	}
}

// VoteHandler godoc
// @Summary      Vote on a community entry
// @Description  Records an up or down vote. Repeating the same direction removes the vote; the opposite direction switches it.
// @Tags         community
// @Security     BearerAuth
// @Accept       json
// @Param        id       path  string           true  "Entry ID"
// @Param        request  body  dto.VoteRequest  true  "Vote direction"
// @Produce      json
// @Success      200  {object}  dto.CommunityEntryDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /community/feed/{id}/vote [post]
func VoteHandler(communitySvc *services.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entryID := c.Param("id")
		if entryID == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "missing_entry_id"})
			return
		}

		var req dto.VoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "missing_direction"})
			return
		}
		direction, ok := votes.Parse(req.Direction)
		if !ok {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_direction"})
			return
		}

		entry, err := communitySvc.Vote(c.Request.Context(), entryID, middleware.UserID(c), direction)
		if err != nil {
			if errors.Is(err, repositories.ErrEntryNotFound) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "entry_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_record_vote"})
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

// FeedStreamHandler godoc
// @Summary      Subscribe to live feed updates
// @Description  Upgrades to a websocket and pushes feed events (new entries, vote changes) as they happen.
// @Tags         community
// @Router       /community/feed/stream [get]
func FeedStreamHandler(notifier *services.FeedNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Log.Warnf("Feed stream upgrade failed: %v", err)
			return
		}

		client := notifier.Register(conn)
		defer notifier.Unregister(client)

		// Clients never send application data; the read loop only exists to
		// detect disconnects and answer control frames.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
