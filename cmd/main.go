package main

import (
	"fmt"
	"os"

	"github.com/PritamPatil2603/podcast-creator-ai/application/services"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/infrastructure/adapters"
	"github.com/PritamPatil2603/podcast-creator-ai/infrastructure/gin_interface/controllers"
	"github.com/PritamPatil2603/podcast-creator-ai/middleware"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, relying on process environment")
	}

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	geminiConfig, err := config.GetGeminiConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get gemini config")
	}

	researchConfig, err := config.GetResearchConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get research config")
	}

	synthesisConfig, err := config.GetSynthesisConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get synthesis config")
	}

	videoConfig, err := config.GetVideoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get video config")
	}

	ttsConfig, err := config.GetTtsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get tts config")
	}

	podcastConfig, err := config.GetPodcastConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get podcast config")
	}

	workflowConfig, err := config.GetWorkflowConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get workflow config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	gatewayConfig, err := config.GetGatewayConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get gateway config")
	}

	authConfig, err := config.NewAuthorizerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get authorizer config")
	}

	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		log.Fatal().Msg("JWKS_URL is not set!")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	searchGenerator := adapters.NewGeminiSearchGenerator(contentFetcher, geminiConfig, zeroLogger)
	textGenerator := adapters.NewGeminiTextGenerator(contentFetcher, geminiConfig, zeroLogger)
	videoAnalyzer := adapters.NewGeminiVideoAnalyzer(contentFetcher, geminiConfig, zeroLogger)
	scriptStreamer := adapters.NewGeminiScriptStreamer(geminiConfig, workerPool, zeroLogger)
	speechSynthesizer := adapters.NewGeminiSpeechSynthesizer(contentFetcher, geminiConfig, ttsConfig, zeroLogger)

	authorizer := adapters.NewCognitoAuthorizer(zeroLogger, authConfig)

	episodeStore := adapters.NewS3EpisodeStore(s3Client, s3Config, zeroLogger)
	episodeCache := adapters.NewDynamoEpisodeCache(zeroLogger, dynamoClient, dynamoConfig)
	episodePublisher := adapters.NewEpisodePublisher(gatewayConfig, authorizer, zeroLogger)

	researchRequester := services.NewResearchRequester(zeroLogger, searchGenerator, researchConfig)
	videoRequester := services.NewVideoRequester(zeroLogger, videoAnalyzer, videoConfig)

	synthesizer := services.NewSynthesizer(zeroLogger, textGenerator, synthesisConfig)

	dialogueWriter := services.NewDialogueWriter(zeroLogger, scriptStreamer, podcastConfig, synthesisConfig)

	audioAssembler := services.NewAudioAssembler(zeroLogger, workerPool, speechSynthesizer, ttsConfig, workflowConfig)

	metadataGenerator := services.NewMetadataGenerator(zeroLogger, textGenerator, synthesisConfig)

	podcastWorkflow := services.NewPodcastWorkflow(zeroLogger, workerPool, researchRequester, videoRequester,
		synthesizer, dialogueWriter, audioAssembler, metadataGenerator, workflowConfig)

	podcastController := controllers.NewPodcastController(zeroLogger, workerPool, podcastWorkflow,
		episodeStore, episodeCache, episodePublisher, podcastConfig)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(jwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	router.Use(authHandler.AuthMiddleware())

	podcastController.RegisterRoutes(router)

	err = router.Run(":8080")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
