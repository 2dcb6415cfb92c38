package common

// ServiceName identifies this service in health responses, logs and
// published events.
const ServiceName = "user-service"
