package client

const (
	apiPrefix = "/api"

	endpointChat                 = apiPrefix + "/chat"                      // POST
	endpointConversations        = apiPrefix + "/conversations"             // GET
	endpointConversationMessages = apiPrefix + "/conversations/%s/messages" // GET
	endpointConversationByID     = apiPrefix + "/conversations/%s"          // DELETE
	endpointHealth               = apiPrefix + "/health"                    // GET
)
