package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnected"

	ActionDatabaseQueryFailed   = "database_query_failed"
	ActionExternalServiceFailed = "external_service_failed"

	ActionGateRedirect    = "gate_redirect"
	ActionAdminCheck      = "admin_check"
	ActionComputeTop      = "compute_top_drivers"
	ActionFetchRoster     = "fetch_roster"
	ActionFetchTxPage     = "fetch_transactions_page"
	ActionPublishActivity = "publish_activity_report"
	ActionActivityFeed    = "activity_feed"

	ActionHTTPServerStart = "http_server_start"
	ActionHTTPServerStop  = "http_server_stop"
	ActionServiceStart    = "service_start"
	ActionServiceStop     = "service_stop"
)
