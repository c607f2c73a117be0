package utils

//run redis
//docker run -p 6379:6379 -d redis

//run qdrant (only for index.backend: qdrant)
//docker run -p 6333:6333 -p 6334:6334 qdrant/qdrant

//run ollama
//ollama pull llama3.2:3b && ollama pull nomic-embed-text

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
